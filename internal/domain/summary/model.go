// Package summary aggregates financial totals over a date range.
package summary

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// RangeFilter bounds a summary query. Both dates are inclusive. An
// absent bound makes the range empty, every sum comes back zero.
type RangeFilter struct {
	Start types.Date `json:"start"`
	End   types.Date `json:"end"`
}

// IsEmpty reports whether either bound is absent.
func (f RangeFilter) IsEmpty() bool {
	return f.Start.IsZero() || f.End.IsZero()
}

// Validate checks that a fully specified range is ordered.
func (f RangeFilter) Validate(ctx context.Context) error {
	if f.IsEmpty() {
		return nil
	}
	if f.Start.After(f.End) {
		return apperror.NewValidation("start date must not be after end date")
	}
	return nil
}

// Summary holds per-category totals for a date range. Every bucket is
// zero, never absent, when no rows fall in the range.
type Summary struct {
	Start types.Date `json:"start"`
	End   types.Date `json:"end"`

	PersonalExpenses  types.Money `json:"personalExpenses"`
	StoreExpenses     types.Money `json:"storeExpenses"`
	ProductPurchases  types.Money `json:"productPurchases"`
	RecurringExpenses types.Money `json:"recurringExpenses"`
	CashRegister      types.Money `json:"cashRegister"`
	Income            types.Money `json:"income"`
	IncomeProfit      types.Money `json:"incomeProfit"`
	IncomeBase        types.Money `json:"incomeBase"`

	TotalExpenses types.Money `json:"totalExpenses"`
	Balance       types.Money `json:"balance"`
}
