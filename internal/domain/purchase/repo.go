package purchase

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Repository defines the interface for product purchase persistence.
type Repository interface {
	Create(ctx context.Context, p *ProductPurchase) error
	GetByID(ctx context.Context, purchaseID id.ID) (*ProductPurchase, error)
	Update(ctx context.Context, p *ProductPurchase) error
	Delete(ctx context.Context, purchaseID id.ID) error

	// ListByDateRange returns purchases dated within [start, end], both inclusive.
	ListByDateRange(ctx context.Context, start, end types.Date) ([]*ProductPurchase, error)
}
