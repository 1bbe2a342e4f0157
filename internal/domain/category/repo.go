package category

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
)

// Repository defines the interface for category persistence.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, categoryID id.ID) (*Category, error)
	Update(ctx context.Context, c *Category) error

	// Delete removes a category. Categories referenced by expenses
	// cannot be deleted (FK RESTRICT surfaces as a conflict).
	Delete(ctx context.Context, categoryID id.ID) error

	List(ctx context.Context) ([]*Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
