// Package recurring provides recurring expense rules and their dated
// occurrences.
package recurring

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Recurrence is the stored cadence of a rule.
//
// The expander currently gates on the active window only; the cadence is
// recorded and validated but not consulted when generating occurrences.
// Keep it that way until the cadence gating question is settled.
type Recurrence string

const (
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Rule describes a recurring expense: what it costs and during which
// window it is in force. EndDate zero means open-ended.
type Rule struct {
	ID          id.ID       `db:"id" json:"id"`
	Description string      `db:"description" json:"description"`
	Value       types.Money `db:"value" json:"value"`
	Recurrence  Recurrence  `db:"recurrence" json:"recurrenceType"`
	StartDate   types.Date  `db:"start_date" json:"startDate"`
	EndDate     types.Date  `db:"end_date" json:"endDate,omitempty"`
	IsActive    bool        `db:"is_active" json:"isActive"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewRule creates an active rule.
func NewRule(description string, value types.Money, recurrence Recurrence, start types.Date) *Rule {
	now := time.Now().UTC()
	return &Rule{
		ID:          id.New(),
		Description: description,
		Value:       value,
		Recurrence:  recurrence,
		StartDate:   start,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks rule invariants.
func (r *Rule) Validate(ctx context.Context) error {
	if r.Description == "" {
		return apperror.NewValidation("description is required").WithDetail("field", "description")
	}
	if r.Value.IsNegative() {
		return apperror.NewValidation("value cannot be negative").WithDetail("field", "value")
	}
	if !isValidRecurrence(r.Recurrence) {
		return apperror.NewValidation("invalid recurrence type").
			WithDetail("field", "recurrenceType").
			WithDetail("value", string(r.Recurrence))
	}
	if r.StartDate.IsZero() {
		return apperror.NewValidation("start date is required").WithDetail("field", "startDate")
	}
	if !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return apperror.NewValidation("end date must not be before start date").
			WithDetail("field", "endDate")
	}
	return nil
}

// Covers reports whether the rule is in force on the given date:
// active, started, and not yet ended.
func (r *Rule) Covers(d types.Date) bool {
	if !r.IsActive {
		return false
	}
	if r.StartDate.After(d) {
		return false
	}
	if !r.EndDate.IsZero() && r.EndDate.Before(d) {
		return false
	}
	return true
}

func isValidRecurrence(r Recurrence) bool {
	switch r {
	case RecurrenceMonthly, RecurrenceWeekly, RecurrenceYearly:
		return true
	}
	return false
}

// Occurrence is one dated, concrete instance of a rule. The value is
// copied from the rule at generation time so later rule edits do not
// rewrite history.
type Occurrence struct {
	ID        id.ID       `db:"id" json:"id"`
	RuleID    id.ID       `db:"rule_id" json:"ruleId"`
	DueDate   types.Date  `db:"due_date" json:"dueDate"`
	Value     types.Money `db:"value" json:"value"`
	IsPaid    bool        `db:"is_paid" json:"isPaid"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
}

// NewOccurrence materializes a rule for one date.
func NewOccurrence(rule *Rule, dueDate types.Date) *Occurrence {
	return &Occurrence{
		ID:        id.New(),
		RuleID:    rule.ID,
		DueDate:   dueDate,
		Value:     rule.Value,
		CreatedAt: time.Now().UTC(),
	}
}
