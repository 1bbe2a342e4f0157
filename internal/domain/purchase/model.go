// Package purchase tracks product purchases, the store's acquisitions
// of stock for resale.
package purchase

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// ProductPurchase is a single acquisition of a product for the store.
type ProductPurchase struct {
	ID          id.ID       `db:"id" json:"id"`
	ProductID   *id.ID      `db:"product_id" json:"productId,omitempty"`
	Description string      `db:"description" json:"description"`
	Value       types.Money `db:"value" json:"value"`
	Quantity    int         `db:"quantity" json:"quantity"`
	Date        types.Date  `db:"date" json:"date"`
	IsPaid      bool        `db:"is_paid" json:"isPaid"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewProductPurchase creates a new purchase with a fresh id.
func NewProductPurchase(description string, value types.Money, quantity int, date types.Date) *ProductPurchase {
	now := time.Now().UTC()
	return &ProductPurchase{
		ID:          id.New(),
		Description: description,
		Value:       value,
		Quantity:    quantity,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks purchase invariants.
func (p *ProductPurchase) Validate(ctx context.Context) error {
	if p.Description == "" {
		return apperror.NewValidation("description is required").WithDetail("field", "description")
	}
	if p.Value.IsNegative() {
		return apperror.NewValidation("value cannot be negative").WithDetail("field", "value")
	}
	if p.Quantity < 1 {
		return apperror.NewValidation("quantity must be at least 1").WithDetail("field", "quantity")
	}
	if p.Date.IsZero() {
		return apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	return nil
}

// MarkPaid flips the paid flag and bumps the update timestamp.
func (p *ProductPurchase) MarkPaid(paid bool) {
	p.IsPaid = paid
	p.UpdatedAt = time.Now().UTC()
}
