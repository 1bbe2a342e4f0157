package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
)

var _ expense.Repository = (*ExpenseRepo)(nil)

var expenseCols = []string{
	"id", "description", "value", "due_date", "is_paid", "source",
	"category_id", "rule_id", "installment_group_id",
	"created_at", "updated_at",
}

// ExpenseRepo is the PostgreSQL implementation of expense.Repository.
type ExpenseRepo struct {
	txm *TxManager
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txm *TxManager) *ExpenseRepo {
	return &ExpenseRepo{txm: txm}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *expense.Expense) error {
	q := Builder().
		Insert("expenses").
		Columns(expenseCols...).
		Values(
			e.ID, e.Description, e.Value, e.DueDate, e.IsPaid, e.Source,
			e.CategoryID, e.RuleID, e.InstallmentGroupID,
			e.CreatedAt, e.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if IsForeignKeyViolation(err) {
			return apperror.NewConflict("expense references a missing category or rule").WithCause(err)
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) CreateBatch(ctx context.Context, expenses []*expense.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	q := Builder().
		Insert("expenses").
		Columns(expenseCols...)
	for _, e := range expenses {
		q = q.Values(
			e.ID, e.Description, e.Value, e.DueDate, e.IsPaid, e.Source,
			e.CategoryID, e.RuleID, e.InstallmentGroupID,
			e.CreatedAt, e.UpdatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build batch insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert expenses: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, expenseID id.ID) (*expense.Expense, error) {
	q := Builder().
		Select(expenseCols...).
		From("expenses").
		Where(squirrel.Eq{"id": expenseID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var e expense.Expense
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("expense", expenseID.String())
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

func (r *ExpenseRepo) Update(ctx context.Context, e *expense.Expense) error {
	q := Builder().
		Update("expenses").
		Set("description", e.Description).
		Set("value", e.Value).
		Set("due_date", e.DueDate).
		Set("is_paid", e.IsPaid).
		Set("source", e.Source).
		Set("category_id", e.CategoryID).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("expense", e.ID.String())
	}
	return nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, expenseID id.ID) error {
	q := Builder().
		Delete("expenses").
		Where(squirrel.Eq{"id": expenseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("expense", expenseID.String())
	}
	return nil
}

func (r *ExpenseRepo) List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	q := Builder().
		Select(expenseCols...).
		From("expenses")

	if filter.Source != nil {
		q = q.Where(squirrel.Eq{"source": *filter.Source})
	}
	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}
	if filter.IsPaid != nil {
		q = q.Where(squirrel.Eq{"is_paid": *filter.IsPaid})
	}
	if !filter.Start.IsZero() {
		q = q.Where(squirrel.GtOrEq{"due_date": filter.Start})
	}
	if !filter.End.IsZero() {
		q = q.Where(squirrel.LtOrEq{"due_date": filter.End})
	}

	q = q.OrderBy("due_date", "created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var expenses []*expense.Expense
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &expenses, sql, args...); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
