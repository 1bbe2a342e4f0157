package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

type fakeExpenseRepo struct {
	created []*Expense
	batches [][]*Expense
}

func (f *fakeExpenseRepo) Create(_ context.Context, e *Expense) error {
	f.created = append(f.created, e)
	return nil
}

func (f *fakeExpenseRepo) GetByID(context.Context, id.ID) (*Expense, error) { return nil, nil }
func (f *fakeExpenseRepo) Update(context.Context, *Expense) error           { return nil }
func (f *fakeExpenseRepo) Delete(context.Context, id.ID) error              { return nil }
func (f *fakeExpenseRepo) List(context.Context, ListFilter) ([]*Expense, error) {
	return nil, nil
}

func (f *fakeExpenseRepo) CreateBatch(_ context.Context, expenses []*Expense) error {
	f.batches = append(f.batches, expenses)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCreateInstallmentsSplitsEvenly(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewService(repo, passthroughTxManager{}, nil)

	template := NewExpense("Freezer", types.ZeroMoney(), types.MustDate("2024-01-15"), SourceStore)
	parts, err := svc.CreateInstallments(context.Background(), template, types.MustMoney("300.00"), 3)
	require.NoError(t, err)
	require.Len(t, parts, 3)
	require.Len(t, repo.batches, 1)

	for i, p := range parts {
		assert.True(t, p.Value.Equal(types.MustMoney("100.00")), "part %d = %s", i, p.Value)
		assert.Equal(t, SourceStore, p.Source)
		assert.NotNil(t, p.InstallmentGroupID)
		assert.Equal(t, *parts[0].InstallmentGroupID, *p.InstallmentGroupID)
	}
	assert.Equal(t, "Freezer (1/3)", parts[0].Description)
	assert.Equal(t, "Freezer (3/3)", parts[2].Description)
}

func TestCreateInstallmentsRemainderOnFirst(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewService(repo, passthroughTxManager{}, nil)

	template := NewExpense("Stock order", types.ZeroMoney(), types.MustDate("2024-01-10"), SourcePersonal)
	parts, err := svc.CreateInstallments(context.Background(), template, types.MustMoney("100.00"), 3)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.True(t, parts[0].Value.Equal(types.MustMoney("33.34")), "first = %s", parts[0].Value)
	assert.True(t, parts[1].Value.Equal(types.MustMoney("33.33")))
	assert.True(t, parts[2].Value.Equal(types.MustMoney("33.33")))

	total := parts[0].Value.Add(parts[1].Value).Add(parts[2].Value)
	assert.True(t, total.Equal(types.MustMoney("100.00")), "sum = %s", total)
}

func TestCreateInstallmentsMonthlyDueDates(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewService(repo, passthroughTxManager{}, nil)

	// Jan 31 shifts to the last day of shorter months.
	template := NewExpense("Rent advance", types.ZeroMoney(), types.MustDate("2024-01-31"), SourceStore)
	parts, err := svc.CreateInstallments(context.Background(), template, types.MustMoney("900.00"), 3)
	require.NoError(t, err)

	assert.True(t, parts[0].DueDate.Equal(types.MustDate("2024-01-31")), "got %s", parts[0].DueDate)
	assert.True(t, parts[1].DueDate.Equal(types.MustDate("2024-02-29")), "got %s", parts[1].DueDate)
	assert.True(t, parts[2].DueDate.Equal(types.MustDate("2024-03-31")), "got %s", parts[2].DueDate)
}

func TestCreateInstallmentsRejectsBadInput(t *testing.T) {
	svc := NewService(&fakeExpenseRepo{}, passthroughTxManager{}, nil)
	template := NewExpense("x", types.ZeroMoney(), types.MustDate("2024-01-01"), SourceStore)

	_, err := svc.CreateInstallments(context.Background(), template, types.MustMoney("10.00"), 1)
	assert.Error(t, err)

	_, err = svc.CreateInstallments(context.Background(), template, types.MustMoney("-10.00"), 2)
	assert.Error(t, err)
}

func TestDueDateForInstallmentKeepsDayWhenItFits(t *testing.T) {
	got := dueDateForInstallment(types.NewDate(2024, time.March, 5), 2)
	assert.True(t, got.Equal(types.NewDate(2024, time.May, 5)), "got %s", got)
}
