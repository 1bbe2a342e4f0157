package summary

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
)

// Repository defines the aggregate queries behind the summary. Each
// method sums over due or entry dates within [start, end], both
// inclusive, and returns zero when nothing matches.
type Repository interface {
	SumExpensesBySource(ctx context.Context, source expense.Source, start, end types.Date) (types.Money, error)
	SumPurchases(ctx context.Context, start, end types.Date) (types.Money, error)
	SumRecurringOccurrences(ctx context.Context, start, end types.Date) (types.Money, error)
	SumCashRegister(ctx context.Context, start, end types.Date) (types.Money, error)
	SumIncome(ctx context.Context, start, end types.Date) (types.Money, error)
	SumIncomeProfit(ctx context.Context, start, end types.Date) (types.Money, error)
}
