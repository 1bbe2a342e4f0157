// Package income records sales revenue with optional product line items.
package income

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Income is a revenue entry. Value is the gross amount received;
// ProfitMargin is the percentage of Value that is profit. The profit
// amount and base value are derived, never stored.
type Income struct {
	ID           id.ID       `db:"id" json:"id"`
	Description  string      `db:"description" json:"description"`
	Date         types.Date  `db:"date" json:"date"`
	Value        types.Money `db:"value" json:"value"`
	ProfitMargin types.Money `db:"profit_margin" json:"profitMargin"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`

	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is a product sold as part of an income entry.
type Line struct {
	ID        id.ID       `db:"id" json:"id"`
	IncomeID  id.ID       `db:"income_id" json:"-"`
	LineNo    int         `db:"line_no" json:"lineNo"`
	ProductID id.ID       `db:"product_id" json:"productId"`
	Quantity  int         `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
}

// NewIncome creates a new income entry with a fresh id.
func NewIncome(description string, date types.Date, value, profitMargin types.Money) *Income {
	now := time.Now().UTC()
	return &Income{
		ID:           id.New(),
		Description:  description,
		Date:         date,
		Value:        value,
		ProfitMargin: profitMargin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AddLine appends a product line, numbering it after the last one.
func (in *Income) AddLine(productID id.ID, quantity int, unitPrice types.Money) {
	in.Lines = append(in.Lines, Line{
		ID:        id.New(),
		IncomeID:  in.ID,
		LineNo:    len(in.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
}

// ProfitAmount is the slice of Value given by ProfitMargin, rounded to cents.
func (in *Income) ProfitAmount() types.Money {
	return types.Percent(in.Value, in.ProfitMargin)
}

// BaseValue is what remains of Value after removing the profit slice.
func (in *Income) BaseValue() types.Money {
	return in.Value.Sub(in.ProfitAmount())
}

// Validate checks income invariants, including its lines.
func (in *Income) Validate(ctx context.Context) error {
	if in.Description == "" {
		return apperror.NewValidation("description is required").WithDetail("field", "description")
	}
	if in.Date.IsZero() {
		return apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	if in.Value.IsNegative() {
		return apperror.NewValidation("value cannot be negative").WithDetail("field", "value")
	}
	if in.ProfitMargin.IsNegative() {
		return apperror.NewValidation("profit margin cannot be negative").WithDetail("field", "profitMargin")
	}
	if in.ProfitMargin.GreaterThan(types.MustMoney("100")) {
		return apperror.NewValidation("profit margin cannot exceed 100").WithDetail("field", "profitMargin")
	}
	for i := range in.Lines {
		if err := in.Lines[i].Validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks line invariants.
func (l *Line) Validate(ctx context.Context) error {
	if id.IsNil(l.ProductID) {
		return apperror.NewValidation("line product is required").WithDetail("field", "productId")
	}
	if l.Quantity < 1 {
		return apperror.NewValidation("line quantity must be at least 1").WithDetail("field", "quantity")
	}
	if l.UnitPrice.IsNegative() {
		return apperror.NewValidation("line unit price cannot be negative").WithDetail("field", "unitPrice")
	}
	return nil
}
