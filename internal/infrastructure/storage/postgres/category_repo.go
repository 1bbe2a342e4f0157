package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/category"
)

var _ category.Repository = (*CategoryRepo)(nil)

var categoryCols = []string{"id", "name", "description", "created_at", "updated_at"}

// CategoryRepo is the PostgreSQL implementation of category.Repository.
type CategoryRepo struct {
	txm *TxManager
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *TxManager) *CategoryRepo {
	return &CategoryRepo{txm: txm}
}

func (r *CategoryRepo) Create(ctx context.Context, c *category.Category) error {
	q := Builder().
		Insert("categories").
		Columns(categoryCols...).
		Values(c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate("category", "name", c.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, categoryID id.ID) (*category.Category, error) {
	q := Builder().
		Select(categoryCols...).
		From("categories").
		Where(squirrel.Eq{"id": categoryID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c category.Category
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("category", categoryID.String())
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *category.Category) error {
	q := Builder().
		Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate("category", "name", c.Name)
		}
		return fmt.Errorf("update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("category", c.ID.String())
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, categoryID id.ID) error {
	q := Builder().
		Delete("categories").
		Where(squirrel.Eq{"id": categoryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return apperror.NewConflict("category is referenced by expenses").
				WithDetail("id", categoryID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("category", categoryID.String())
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	q := Builder().
		Select(categoryCols...).
		From("categories").
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var categories []*category.Category
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &categories, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := Builder().
		Select("1").
		From("categories").
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists by name: %w", err)
	}
	return true, nil
}
