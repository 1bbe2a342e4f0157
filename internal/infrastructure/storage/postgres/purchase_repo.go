package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/purchase"
)

var _ purchase.Repository = (*PurchaseRepo)(nil)

var purchaseCols = []string{
	"id", "product_id", "description", "value", "quantity", "date", "is_paid",
	"created_at", "updated_at",
}

// PurchaseRepo is the PostgreSQL implementation of purchase.Repository.
type PurchaseRepo struct {
	txm *TxManager
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txm *TxManager) *PurchaseRepo {
	return &PurchaseRepo{txm: txm}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *purchase.ProductPurchase) error {
	q := Builder().
		Insert("product_purchases").
		Columns(purchaseCols...).
		Values(
			p.ID, p.ProductID, p.Description, p.Value, p.Quantity, p.Date, p.IsPaid,
			p.CreatedAt, p.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if IsForeignKeyViolation(err) {
			return apperror.NewConflict("purchase references a missing product").WithCause(err)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchase.ProductPurchase, error) {
	q := Builder().
		Select(purchaseCols...).
		From("product_purchases").
		Where(squirrel.Eq{"id": purchaseID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p purchase.ProductPurchase
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product_purchase", purchaseID.String())
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepo) Update(ctx context.Context, p *purchase.ProductPurchase) error {
	q := Builder().
		Update("product_purchases").
		Set("product_id", p.ProductID).
		Set("description", p.Description).
		Set("value", p.Value).
		Set("quantity", p.Quantity).
		Set("date", p.Date).
		Set("is_paid", p.IsPaid).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product_purchase", p.ID.String())
	}
	return nil
}

func (r *PurchaseRepo) Delete(ctx context.Context, purchaseID id.ID) error {
	q := Builder().
		Delete("product_purchases").
		Where(squirrel.Eq{"id": purchaseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product_purchase", purchaseID.String())
	}
	return nil
}

func (r *PurchaseRepo) ListByDateRange(ctx context.Context, start, end types.Date) ([]*purchase.ProductPurchase, error) {
	q := Builder().
		Select(purchaseCols...).
		From("product_purchases").
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date", "created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var purchases []*purchase.ProductPurchase
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &purchases, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}
