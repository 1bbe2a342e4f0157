// Package expense provides one-off expenses across reporting buckets.
package expense

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Source partitions expenses into mutually exclusive reporting buckets.
type Source string

const (
	SourcePersonal        Source = "personal"
	SourceStore           Source = "store"
	SourceProductPurchase Source = "product_purchase"
)

// Expense is a dated, one-off monetary outflow.
type Expense struct {
	ID          id.ID       `db:"id" json:"id"`
	Description string      `db:"description" json:"description"`
	Value       types.Money `db:"value" json:"value"`
	DueDate     types.Date  `db:"due_date" json:"dueDate"`
	IsPaid      bool        `db:"is_paid" json:"isPaid"`
	Source      Source      `db:"source" json:"source"`

	// CategoryID is an optional link to an expense category.
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// RuleID links back to the recurring rule that spawned this expense,
	// when it was created from one.
	RuleID *id.ID `db:"rule_id" json:"ruleId,omitempty"`

	// InstallmentGroupID groups the parts of an installment purchase.
	InstallmentGroupID *id.ID `db:"installment_group_id" json:"installmentGroupId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewExpense creates a new unpaid expense.
func NewExpense(description string, value types.Money, dueDate types.Date, source Source) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:          id.New(),
		Description: description,
		Value:       value,
		DueDate:     dueDate,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks expense invariants.
func (e *Expense) Validate(ctx context.Context) error {
	if e.Description == "" {
		return apperror.NewValidation("description is required").WithDetail("field", "description")
	}
	if e.Value.IsNegative() {
		return apperror.NewValidation("value cannot be negative").WithDetail("field", "value")
	}
	if e.DueDate.IsZero() {
		return apperror.NewValidation("due date is required").WithDetail("field", "dueDate")
	}
	if !isValidSource(e.Source) {
		return apperror.NewValidation("invalid expense source").
			WithDetail("field", "source").
			WithDetail("value", string(e.Source))
	}
	return nil
}

// MarkPaid sets the paid flag.
func (e *Expense) MarkPaid(paid bool) {
	e.IsPaid = paid
	e.UpdatedAt = time.Now().UTC()
}

func isValidSource(s Source) bool {
	switch s {
	case SourcePersonal, SourceStore, SourceProductPurchase:
		return true
	}
	return false
}

// ListFilter narrows expense list queries.
type ListFilter struct {
	Source     *Source
	CategoryID *id.ID
	IsPaid     *bool
	Start      types.Date
	End        types.Date
}
