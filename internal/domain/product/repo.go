package product

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
)

// Repository defines the interface for product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	Update(ctx context.Context, p *Product) error

	// Delete removes a product. Products referenced by purchases or
	// income lines cannot be deleted (FK RESTRICT surfaces as a conflict).
	Delete(ctx context.Context, productID id.ID) error

	List(ctx context.Context) ([]*Product, error)

	// AdjustStock atomically changes the stock level by delta.
	AdjustStock(ctx context.Context, productID id.ID, delta int) error
}
