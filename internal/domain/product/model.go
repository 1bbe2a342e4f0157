// Package product provides the product catalog.
package product

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Product is an item the store sells.
type Product struct {
	ID          id.ID       `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Description *string     `db:"description" json:"description,omitempty"`
	Price       types.Money `db:"price" json:"price"`
	Stock       int         `db:"stock" json:"stock"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates a new product.
func NewProduct(name string, price types.Money) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:        id.New(),
		Name:      name,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").WithDetail("field", "price")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").WithDetail("field", "stock")
	}
	return nil
}
