package cashregister

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Repository defines the interface for cash register persistence.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, entryID id.ID) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, entryID id.ID) error

	// ListByDateRange retrieves entries within [start, end], both inclusive,
	// ordered by date.
	ListByDateRange(ctx context.Context, start, end types.Date) ([]*Entry, error)
}
