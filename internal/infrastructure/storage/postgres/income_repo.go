package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/income"
)

var _ income.Repository = (*IncomeRepo)(nil)

var (
	incomeCols     = []string{"id", "description", "date", "value", "profit_margin", "created_at", "updated_at"}
	incomeLineCols = []string{"id", "income_id", "line_no", "product_id", "quantity", "unit_price"}
)

// IncomeRepo is the PostgreSQL implementation of income.Repository.
type IncomeRepo struct {
	txm *TxManager
}

// NewIncomeRepo creates a new income repository.
func NewIncomeRepo(txm *TxManager) *IncomeRepo {
	return &IncomeRepo{txm: txm}
}

func (r *IncomeRepo) Create(ctx context.Context, in *income.Income) error {
	q := Builder().
		Insert("incomes").
		Columns(incomeCols...).
		Values(in.ID, in.Description, in.Date, in.Value, in.ProfitMargin, in.CreatedAt, in.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	return nil
}

func (r *IncomeRepo) GetByID(ctx context.Context, incomeID id.ID) (*income.Income, error) {
	q := Builder().
		Select(incomeCols...).
		From("incomes").
		Where(squirrel.Eq{"id": incomeID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var in income.Income
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &in, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("income", incomeID.String())
		}
		return nil, fmt.Errorf("get income: %w", err)
	}

	lines, err := r.loadLines(ctx, incomeID)
	if err != nil {
		return nil, err
	}
	in.Lines = lines
	return &in, nil
}

func (r *IncomeRepo) Update(ctx context.Context, in *income.Income) error {
	q := Builder().
		Update("incomes").
		Set("description", in.Description).
		Set("date", in.Date).
		Set("value", in.Value).
		Set("profit_margin", in.ProfitMargin).
		Set("updated_at", in.UpdatedAt).
		Where(squirrel.Eq{"id": in.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("income", in.ID.String())
	}
	return nil
}

func (r *IncomeRepo) Delete(ctx context.Context, incomeID id.ID) error {
	// Lines go first, they reference the income.
	delLines := Builder().
		Delete("income_lines").
		Where(squirrel.Eq{"income_id": incomeID})

	sql, args, err := delLines.ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete income lines: %w", err)
	}

	del := Builder().
		Delete("incomes").
		Where(squirrel.Eq{"id": incomeID})

	sql, args, err = del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("income", incomeID.String())
	}
	return nil
}

func (r *IncomeRepo) ListByDateRange(ctx context.Context, start, end types.Date) ([]*income.Income, error) {
	q := Builder().
		Select(incomeCols...).
		From("incomes").
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date", "created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var incomes []*income.Income
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &incomes, sql, args...); err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}

	for _, in := range incomes {
		lines, err := r.loadLines(ctx, in.ID)
		if err != nil {
			return nil, err
		}
		in.Lines = lines
	}
	return incomes, nil
}

// SaveLines replaces the whole line set: delete then insert keeps the
// stored lines exactly in sync with the document.
func (r *IncomeRepo) SaveLines(ctx context.Context, incomeID id.ID, lines []income.Line) error {
	del := Builder().
		Delete("income_lines").
		Where(squirrel.Eq{"income_id": incomeID})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete income lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	ins := Builder().
		Insert("income_lines").
		Columns(incomeLineCols...)
	for _, l := range lines {
		ins = ins.Values(l.ID, incomeID, l.LineNo, l.ProductID, l.Quantity, l.UnitPrice)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if IsForeignKeyViolation(err) {
			return apperror.NewConflict("income line references a missing product").WithCause(err)
		}
		return fmt.Errorf("insert income lines: %w", err)
	}
	return nil
}

func (r *IncomeRepo) loadLines(ctx context.Context, incomeID id.ID) ([]income.Line, error) {
	q := Builder().
		Select(incomeLineCols...).
		From("income_lines").
		Where(squirrel.Eq{"income_id": incomeID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []income.Line
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("load income lines: %w", err)
	}
	return lines, nil
}
