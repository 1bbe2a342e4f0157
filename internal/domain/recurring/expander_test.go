package recurring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo is an in-memory Repository covering what the expander needs.
type fakeRepo struct {
	Repository

	rules       []*Rule
	occurrences map[string]*Occurrence // keyed by ruleID|dueDate
	insertErr   error
}

func newFakeRepo(rules ...*Rule) *fakeRepo {
	return &fakeRepo{
		rules:       rules,
		occurrences: make(map[string]*Occurrence),
	}
}

func occKey(ruleID id.ID, due types.Date) string {
	return ruleID.String() + "|" + due.String()
}

func (f *fakeRepo) ListRulesCovering(_ context.Context, asOf types.Date) ([]*Rule, error) {
	var out []*Rule
	for _, r := range f.rules {
		if r.Covers(asOf) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) InsertOccurrenceIfAbsent(_ context.Context, o *Occurrence) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	key := occKey(o.RuleID, o.DueDate)
	if _, exists := f.occurrences[key]; exists {
		return false, nil
	}
	f.occurrences[key] = o
	return true, nil
}

func TestExpanderCreatesOneOccurrencePerCoveredRule(t *testing.T) {
	rule := NewRule("rent", types.MustMoney("50.00"), RecurrenceMonthly, types.MustDate("2024-01-01"))
	repo := newFakeRepo(rule)
	expander := NewExpander(repo, fakeTxManager{})

	created, err := expander.Run(context.Background(), types.MustDate("2024-03-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	occ := repo.occurrences[occKey(rule.ID, types.MustDate("2024-03-15"))]
	require.NotNil(t, occ)
	assert.True(t, occ.Value.Equal(types.MustMoney("50.00")))
	assert.False(t, occ.IsPaid)
	assert.Equal(t, "2024-03-15", occ.DueDate.String())
}

func TestExpanderRerunForSameDateCreatesNothing(t *testing.T) {
	rule := NewRule("rent", types.MustMoney("50.00"), RecurrenceMonthly, types.MustDate("2024-01-01"))
	repo := newFakeRepo(rule)
	expander := NewExpander(repo, fakeTxManager{})

	asOf := types.MustDate("2024-03-15")

	created, err := expander.Run(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = expander.Run(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, repo.occurrences, 1)
}

func TestExpanderSkipsRulesOutsideWindowOrInactive(t *testing.T) {
	notStarted := NewRule("future", types.MustMoney("10.00"), RecurrenceMonthly, types.MustDate("2024-06-01"))

	ended := NewRule("old", types.MustMoney("10.00"), RecurrenceMonthly, types.MustDate("2023-01-01"))
	ended.EndDate = types.MustDate("2023-12-31")

	inactive := NewRule("paused", types.MustMoney("10.00"), RecurrenceMonthly, types.MustDate("2024-01-01"))
	inactive.IsActive = false

	repo := newFakeRepo(notStarted, ended, inactive)
	expander := NewExpander(repo, fakeTxManager{})

	created, err := expander.Run(context.Background(), types.MustDate("2024-03-15"))
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Empty(t, repo.occurrences)
}

func TestExpanderIncludesWindowBoundaryDates(t *testing.T) {
	rule := NewRule("bounded", types.MustMoney("25.00"), RecurrenceWeekly, types.MustDate("2024-02-01"))
	rule.EndDate = types.MustDate("2024-02-29")

	repo := newFakeRepo(rule)
	expander := NewExpander(repo, fakeTxManager{})

	for _, day := range []string{"2024-02-01", "2024-02-29"} {
		created, err := expander.Run(context.Background(), types.MustDate(day))
		require.NoError(t, err)
		assert.Equal(t, 1, created, "boundary date %s", day)
	}
}

// The stored cadence does not gate expansion: a monthly rule fires on
// every day inside its window, not only on its monthly anniversary.
// This mirrors the observed behavior of the system; if cadence gating
// is ever added, this test documents the change of semantics.
func TestExpanderIgnoresCadenceWithinWindow(t *testing.T) {
	rule := NewRule("monthly-but-daily", types.MustMoney("50.00"), RecurrenceMonthly, types.MustDate("2024-03-01"))
	repo := newFakeRepo(rule)
	expander := NewExpander(repo, fakeTxManager{})

	// Three consecutive days, none of them the rule's anniversary gap.
	for _, day := range []string{"2024-03-14", "2024-03-15", "2024-03-16"} {
		created, err := expander.Run(context.Background(), types.MustDate(day))
		require.NoError(t, err)
		assert.Equal(t, 1, created, "day %s", day)
	}
	assert.Len(t, repo.occurrences, 3)
}

func TestExpanderRequiresAsOfDate(t *testing.T) {
	expander := NewExpander(newFakeRepo(), fakeTxManager{})

	_, err := expander.Run(context.Background(), types.Date{})
	require.Error(t, err)
}

func TestExpanderAbortsRunOnInsertError(t *testing.T) {
	rule := NewRule("rent", types.MustMoney("50.00"), RecurrenceMonthly, types.MustDate("2024-01-01"))
	repo := newFakeRepo(rule)
	repo.insertErr = errors.New("connection reset")
	expander := NewExpander(repo, fakeTxManager{})

	created, err := expander.Run(context.Background(), types.MustDate("2024-03-15"))
	require.Error(t, err)
	assert.Equal(t, 0, created)
}
