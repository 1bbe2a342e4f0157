package summary

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
)

// Service computes date-range summaries.
type Service struct {
	repo Repository
}

// NewService creates a new summary service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetSummary computes all totals for the requested range. Expense-side
// buckets add into TotalExpenses; Balance is income plus cash register
// minus total expenses. A range with an absent bound sums nothing and
// yields all-zero buckets.
func (s *Service) GetSummary(ctx context.Context, filter RangeFilter) (*Summary, error) {
	if err := filter.Validate(ctx); err != nil {
		return nil, err
	}

	result := &Summary{
		Start:             filter.Start,
		End:               filter.End,
		PersonalExpenses:  types.ZeroMoney(),
		StoreExpenses:     types.ZeroMoney(),
		ProductPurchases:  types.ZeroMoney(),
		RecurringExpenses: types.ZeroMoney(),
		CashRegister:      types.ZeroMoney(),
		Income:            types.ZeroMoney(),
		IncomeProfit:      types.ZeroMoney(),
		IncomeBase:        types.ZeroMoney(),
		TotalExpenses:     types.ZeroMoney(),
		Balance:           types.ZeroMoney(),
	}
	if filter.IsEmpty() {
		return result, nil
	}

	var err error
	if result.PersonalExpenses, err = s.repo.SumExpensesBySource(ctx, expense.SourcePersonal, filter.Start, filter.End); err != nil {
		return nil, err
	}
	if result.StoreExpenses, err = s.repo.SumExpensesBySource(ctx, expense.SourceStore, filter.Start, filter.End); err != nil {
		return nil, err
	}
	if result.ProductPurchases, err = s.repo.SumPurchases(ctx, filter.Start, filter.End); err != nil {
		return nil, err
	}
	if result.RecurringExpenses, err = s.repo.SumRecurringOccurrences(ctx, filter.Start, filter.End); err != nil {
		return nil, err
	}
	if result.CashRegister, err = s.repo.SumCashRegister(ctx, filter.Start, filter.End); err != nil {
		return nil, err
	}
	if result.Income, err = s.repo.SumIncome(ctx, filter.Start, filter.End); err != nil {
		return nil, err
	}
	if result.IncomeProfit, err = s.repo.SumIncomeProfit(ctx, filter.Start, filter.End); err != nil {
		return nil, err
	}

	result.IncomeBase = result.Income.Sub(result.IncomeProfit)
	result.TotalExpenses = result.PersonalExpenses.
		Add(result.StoreExpenses).
		Add(result.ProductPurchases).
		Add(result.RecurringExpenses)
	result.Balance = result.Income.Add(result.CashRegister).Sub(result.TotalExpenses)

	return result, nil
}
