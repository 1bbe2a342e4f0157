package expense

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
)

// Repository defines the interface for expense persistence.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, expenseID id.ID) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, expenseID id.ID) error

	// List retrieves expenses matching the filter, ordered by due date.
	// Date bounds, when set, are inclusive on both ends.
	List(ctx context.Context, filter ListFilter) ([]*Expense, error)

	// CreateBatch inserts several expenses at once (installment groups).
	CreateBatch(ctx context.Context, expenses []*Expense) error
}
