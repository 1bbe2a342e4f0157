package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/product"
)

var _ product.Repository = (*ProductRepo)(nil)

var productCols = []string{"id", "name", "description", "price", "stock", "created_at", "updated_at"}

// ProductRepo is the PostgreSQL implementation of product.Repository.
type ProductRepo struct {
	txm *TxManager
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *TxManager) *ProductRepo {
	return &ProductRepo{txm: txm}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := Builder().
		Insert("products").
		Columns(productCols...).
		Values(p.ID, p.Name, p.Description, p.Price, p.Stock, p.CreatedAt, p.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate("product", "name", p.Name)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := Builder().
		Select(productCols...).
		From("products").
		Where(squirrel.Eq{"id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := Builder().
		Update("products").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("stock", p.Stock).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate("product", "name", p.Name)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID.String())
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	q := Builder().
		Delete("products").
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return apperror.NewConflict("product is referenced by purchases or sales").
				WithDetail("id", productID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*product.Product, error) {
	q := Builder().
		Select(productCols...).
		From("products").
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []*product.Product
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &products, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// AdjustStock applies the delta in a single UPDATE so concurrent
// adjustments never lose increments.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int) error {
	q := Builder().
		Update("products").
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}
