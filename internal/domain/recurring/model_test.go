package recurring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

func TestRuleValidate(t *testing.T) {
	ctx := context.Background()

	valid := NewRule("internet", types.MustMoney("99.90"), RecurrenceMonthly, types.MustDate("2024-01-05"))
	require.NoError(t, valid.Validate(ctx))

	tests := []struct {
		name   string
		mutate func(*Rule)
	}{
		{"empty description", func(r *Rule) { r.Description = "" }},
		{"negative value", func(r *Rule) { r.Value = types.MustMoney("-1.00") }},
		{"bad recurrence", func(r *Rule) { r.Recurrence = "daily" }},
		{"missing start", func(r *Rule) { r.StartDate = types.Date{} }},
		{"end before start", func(r *Rule) { r.EndDate = types.MustDate("2023-12-31") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRule("internet", types.MustMoney("99.90"), RecurrenceMonthly, types.MustDate("2024-01-05"))
			tt.mutate(r)
			assert.Error(t, r.Validate(ctx))
		})
	}
}

func TestRuleCovers(t *testing.T) {
	rule := NewRule("rent", types.MustMoney("850.00"), RecurrenceMonthly, types.MustDate("2024-01-01"))
	rule.EndDate = types.MustDate("2024-06-30")

	assert.False(t, rule.Covers(types.MustDate("2023-12-31")))
	assert.True(t, rule.Covers(types.MustDate("2024-01-01")))
	assert.True(t, rule.Covers(types.MustDate("2024-03-15")))
	assert.True(t, rule.Covers(types.MustDate("2024-06-30")))
	assert.False(t, rule.Covers(types.MustDate("2024-07-01")))

	rule.IsActive = false
	assert.False(t, rule.Covers(types.MustDate("2024-03-15")))
}

func TestRuleCoversOpenEnded(t *testing.T) {
	rule := NewRule("rent", types.MustMoney("850.00"), RecurrenceMonthly, types.MustDate("2024-01-01"))

	assert.True(t, rule.Covers(types.MustDate("2030-12-31")))
}

func TestNewOccurrenceCopiesRuleValue(t *testing.T) {
	rule := NewRule("rent", types.MustMoney("850.00"), RecurrenceMonthly, types.MustDate("2024-01-01"))

	occ := NewOccurrence(rule, types.MustDate("2024-02-10"))

	assert.Equal(t, rule.ID, occ.RuleID)
	assert.True(t, occ.Value.Equal(rule.Value))
	assert.False(t, occ.IsPaid)

	// Later rule edits must not affect the materialized value.
	rule.Value = types.MustMoney("900.00")
	assert.True(t, occ.Value.Equal(types.MustMoney("850.00")))
}
