package income

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Repository defines the interface for income persistence.
type Repository interface {
	Create(ctx context.Context, in *Income) error

	// GetByID returns the income with its lines loaded.
	GetByID(ctx context.Context, incomeID id.ID) (*Income, error)

	Update(ctx context.Context, in *Income) error
	Delete(ctx context.Context, incomeID id.ID) error

	// ListByDateRange returns incomes dated within [start, end], both
	// inclusive, with lines loaded.
	ListByDateRange(ctx context.Context, start, end types.Date) ([]*Income, error)

	// SaveLines replaces all lines of an income with the given set.
	SaveLines(ctx context.Context, incomeID id.ID, lines []Line) error
}
