package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/summary"
)

var _ summary.Repository = (*SummaryRepo)(nil)

// SummaryRepo answers the aggregate queries behind date-range summaries.
// Every method COALESCEs to zero so an empty range never yields NULL.
type SummaryRepo struct {
	txm *TxManager
}

// NewSummaryRepo creates a new summary repository.
func NewSummaryRepo(txm *TxManager) *SummaryRepo {
	return &SummaryRepo{txm: txm}
}

func (r *SummaryRepo) sum(ctx context.Context, q squirrel.SelectBuilder) (types.Money, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return types.ZeroMoney(), fmt.Errorf("build query: %w", err)
	}

	var total types.Money
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return types.ZeroMoney(), fmt.Errorf("sum: %w", err)
	}
	return total, nil
}

// sumOverRangeQuery builds the shared aggregate shape: one COALESCEd
// sum over rows whose date column falls within [start, end], both
// bounds inclusive.
func sumOverRangeQuery(expr, table, dateCol string, start, end types.Date) squirrel.SelectBuilder {
	return Builder().
		Select(expr).
		From(table).
		Where(squirrel.GtOrEq{dateCol: start}).
		Where(squirrel.LtOrEq{dateCol: end})
}

func sumExpensesQuery(source expense.Source, start, end types.Date) squirrel.SelectBuilder {
	return sumOverRangeQuery("COALESCE(SUM(value), 0)", "expenses", "due_date", start, end).
		Where(squirrel.Eq{"source": source})
}

func (r *SummaryRepo) SumExpensesBySource(ctx context.Context, source expense.Source, start, end types.Date) (types.Money, error) {
	return r.sum(ctx, sumExpensesQuery(source, start, end))
}

func (r *SummaryRepo) SumPurchases(ctx context.Context, start, end types.Date) (types.Money, error) {
	return r.sum(ctx, sumOverRangeQuery("COALESCE(SUM(value), 0)", "product_purchases", "date", start, end))
}

func (r *SummaryRepo) SumRecurringOccurrences(ctx context.Context, start, end types.Date) (types.Money, error) {
	return r.sum(ctx, sumOverRangeQuery("COALESCE(SUM(value), 0)", "recurring_expense_occurrences", "due_date", start, end))
}

func (r *SummaryRepo) SumCashRegister(ctx context.Context, start, end types.Date) (types.Money, error) {
	return r.sum(ctx, sumOverRangeQuery("COALESCE(SUM(value), 0)", "cash_register_entries", "date", start, end))
}

func (r *SummaryRepo) SumIncome(ctx context.Context, start, end types.Date) (types.Money, error) {
	return r.sum(ctx, sumOverRangeQuery("COALESCE(SUM(value), 0)", "incomes", "date", start, end))
}

// SumIncomeProfit sums the per-row profit slice, rounded to cents per
// entry so the total matches what each entry reports individually.
func (r *SummaryRepo) SumIncomeProfit(ctx context.Context, start, end types.Date) (types.Money, error) {
	return r.sum(ctx, sumOverRangeQuery("COALESCE(SUM(ROUND(value * profit_margin / 100, 2)), 0)", "incomes", "date", start, end))
}
