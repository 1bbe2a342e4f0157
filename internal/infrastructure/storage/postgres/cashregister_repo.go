package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/cashregister"
)

var _ cashregister.Repository = (*CashRegisterRepo)(nil)

var cashRegisterCols = []string{"id", "date", "value", "description", "created_at", "updated_at"}

// CashRegisterRepo is the PostgreSQL implementation of cashregister.Repository.
type CashRegisterRepo struct {
	txm *TxManager
}

// NewCashRegisterRepo creates a new cash register repository.
func NewCashRegisterRepo(txm *TxManager) *CashRegisterRepo {
	return &CashRegisterRepo{txm: txm}
}

func (r *CashRegisterRepo) Create(ctx context.Context, e *cashregister.Entry) error {
	q := Builder().
		Insert("cash_register_entries").
		Columns(cashRegisterCols...).
		Values(e.ID, e.Date, e.Value, e.Description, e.CreatedAt, e.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert cash register entry: %w", err)
	}
	return nil
}

func (r *CashRegisterRepo) GetByID(ctx context.Context, entryID id.ID) (*cashregister.Entry, error) {
	q := Builder().
		Select(cashRegisterCols...).
		From("cash_register_entries").
		Where(squirrel.Eq{"id": entryID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var e cashregister.Entry
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("cash_register_entry", entryID.String())
		}
		return nil, fmt.Errorf("get cash register entry: %w", err)
	}
	return &e, nil
}

func (r *CashRegisterRepo) Update(ctx context.Context, e *cashregister.Entry) error {
	q := Builder().
		Update("cash_register_entries").
		Set("date", e.Date).
		Set("value", e.Value).
		Set("description", e.Description).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update cash register entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("cash_register_entry", e.ID.String())
	}
	return nil
}

func (r *CashRegisterRepo) Delete(ctx context.Context, entryID id.ID) error {
	q := Builder().
		Delete("cash_register_entries").
		Where(squirrel.Eq{"id": entryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete cash register entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("cash_register_entry", entryID.String())
	}
	return nil
}

func (r *CashRegisterRepo) ListByDateRange(ctx context.Context, start, end types.Date) ([]*cashregister.Entry, error) {
	q := Builder().
		Select(cashRegisterCols...).
		From("cash_register_entries").
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date", "created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []*cashregister.Entry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list cash register entries: %w", err)
	}
	return entries, nil
}
