package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
)

type fakeSummaryRepo struct {
	personal  types.Money
	store     types.Money
	purchases types.Money
	recurring types.Money
	cash      types.Money
	income    types.Money
	profit    types.Money
}

func (f *fakeSummaryRepo) SumExpensesBySource(_ context.Context, source expense.Source, _, _ types.Date) (types.Money, error) {
	if source == expense.SourcePersonal {
		return f.personal, nil
	}
	return f.store, nil
}

func (f *fakeSummaryRepo) SumPurchases(context.Context, types.Date, types.Date) (types.Money, error) {
	return f.purchases, nil
}

func (f *fakeSummaryRepo) SumRecurringOccurrences(context.Context, types.Date, types.Date) (types.Money, error) {
	return f.recurring, nil
}

func (f *fakeSummaryRepo) SumCashRegister(context.Context, types.Date, types.Date) (types.Money, error) {
	return f.cash, nil
}

func (f *fakeSummaryRepo) SumIncome(context.Context, types.Date, types.Date) (types.Money, error) {
	return f.income, nil
}

func (f *fakeSummaryRepo) SumIncomeProfit(context.Context, types.Date, types.Date) (types.Money, error) {
	return f.profit, nil
}

func TestGetSummaryTotals(t *testing.T) {
	repo := &fakeSummaryRepo{
		personal:  types.MustMoney("120.00"),
		store:     types.MustMoney("330.50"),
		purchases: types.MustMoney("200.00"),
		recurring: types.MustMoney("99.90"),
		cash:      types.MustMoney("1500.00"),
		income:    types.MustMoney("2500.00"),
		profit:    types.MustMoney("700.00"),
	}
	svc := NewService(repo)

	got, err := svc.GetSummary(context.Background(), RangeFilter{
		Start: types.MustDate("2024-03-01"),
		End:   types.MustDate("2024-03-31"),
	})
	require.NoError(t, err)

	assert.True(t, got.TotalExpenses.Equal(types.MustMoney("750.40")), "total = %s", got.TotalExpenses)
	// 2500.00 + 1500.00 - 750.40
	assert.True(t, got.Balance.Equal(types.MustMoney("3249.60")), "balance = %s", got.Balance)
	assert.True(t, got.IncomeProfit.Equal(types.MustMoney("700.00")))
	assert.True(t, got.IncomeBase.Equal(types.MustMoney("1800.00")), "base = %s", got.IncomeBase)
}

func TestGetSummaryEmptyRangeIsAllZeros(t *testing.T) {
	repo := &fakeSummaryRepo{
		personal:  types.ZeroMoney(),
		store:     types.ZeroMoney(),
		purchases: types.ZeroMoney(),
		recurring: types.ZeroMoney(),
		cash:      types.ZeroMoney(),
		income:    types.ZeroMoney(),
		profit:    types.ZeroMoney(),
	}
	svc := NewService(repo)

	got, err := svc.GetSummary(context.Background(), RangeFilter{
		Start: types.MustDate("2024-03-01"),
		End:   types.MustDate("2024-03-31"),
	})
	require.NoError(t, err)

	assert.True(t, got.PersonalExpenses.IsZero())
	assert.True(t, got.StoreExpenses.IsZero())
	assert.True(t, got.ProductPurchases.IsZero())
	assert.True(t, got.RecurringExpenses.IsZero())
	assert.True(t, got.CashRegister.IsZero())
	assert.True(t, got.Income.IsZero())
	assert.True(t, got.IncomeProfit.IsZero())
	assert.True(t, got.IncomeBase.IsZero())
	assert.True(t, got.TotalExpenses.IsZero())
	assert.True(t, got.Balance.IsZero())
}

func TestGetSummaryRejectsInvertedRange(t *testing.T) {
	svc := NewService(&fakeSummaryRepo{})

	_, err := svc.GetSummary(context.Background(), RangeFilter{
		Start: types.MustDate("2024-04-01"),
		End:   types.MustDate("2024-03-01"),
	})
	assert.Error(t, err)
}

func TestGetSummaryAbsentBoundYieldsZeros(t *testing.T) {
	// Nonzero repo values prove the sums are never consulted
	// when a bound is missing.
	repo := &fakeSummaryRepo{
		personal:  types.MustMoney("120.00"),
		store:     types.MustMoney("330.50"),
		purchases: types.MustMoney("200.00"),
		recurring: types.MustMoney("99.90"),
		cash:      types.MustMoney("1500.00"),
		income:    types.MustMoney("2500.00"),
		profit:    types.MustMoney("700.00"),
	}
	svc := NewService(repo)

	tests := []struct {
		name   string
		filter RangeFilter
	}{
		{"missing start", RangeFilter{End: types.MustDate("2024-03-31")}},
		{"missing end", RangeFilter{Start: types.MustDate("2024-03-01")}},
		{"missing both", RangeFilter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetSummary(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.True(t, got.PersonalExpenses.IsZero())
			assert.True(t, got.StoreExpenses.IsZero())
			assert.True(t, got.ProductPurchases.IsZero())
			assert.True(t, got.RecurringExpenses.IsZero())
			assert.True(t, got.CashRegister.IsZero())
			assert.True(t, got.Income.IsZero())
			assert.True(t, got.IncomeProfit.IsZero())
			assert.True(t, got.IncomeBase.IsZero())
			assert.True(t, got.TotalExpenses.IsZero())
			assert.True(t, got.Balance.IsZero())
		})
	}
}

func TestGetSummarySingleDayRange(t *testing.T) {
	repo := &fakeSummaryRepo{
		personal: types.MustMoney("10.00"),
		income:   types.MustMoney("40.00"),
		store:    types.ZeroMoney(), purchases: types.ZeroMoney(),
		recurring: types.ZeroMoney(), cash: types.ZeroMoney(), profit: types.ZeroMoney(),
	}
	svc := NewService(repo)

	got, err := svc.GetSummary(context.Background(), RangeFilter{
		Start: types.MustDate("2024-03-15"),
		End:   types.MustDate("2024-03-15"),
	})
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(types.MustMoney("30.00")))
}
