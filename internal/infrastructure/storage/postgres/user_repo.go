package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/auth"
)

// Compile-time check.
var _ auth.Repository = (*UserRepo)(nil)

var userCols = []string{
	"id", "email", "name", "password_hash", "is_active", "is_admin",
	"last_login_at", "failed_login_attempts", "locked_until",
	"created_at", "updated_at",
}

// UserRepo is the PostgreSQL implementation of auth.Repository.
type UserRepo struct {
	txm *TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := Builder().
		Insert("users").
		Columns(userCols...).
		Values(
			user.ID, user.Email, user.Name, user.PasswordHash,
			user.IsActive, user.IsAdmin,
			user.LastLoginAt, user.FailedLoginAttempts, user.LockedUntil,
			user.CreatedAt, user.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate("user", "email", user.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	q := Builder().
		Select(userCols...).
		From("users").
		Where(squirrel.Eq{"id": userID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var user auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	q := Builder().
		Select(userCols...).
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var user auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	q := Builder().
		Update("users").
		Set("email", user.Email).
		Set("name", user.Name).
		Set("password_hash", user.PasswordHash).
		Set("is_active", user.IsActive).
		Set("is_admin", user.IsAdmin).
		Set("last_login_at", user.LastLoginAt).
		Set("failed_login_attempts", user.FailedLoginAttempts).
		Set("locked_until", user.LockedUntil).
		Set("updated_at", user.UpdatedAt).
		Where(squirrel.Eq{"id": user.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate("user", "email", user.Email)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID.String())
	}
	return nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := Builder().
		Select("1").
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
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
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return true, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*auth.User, error) {
	q := Builder().
		Select(userCols...).
		From("users").
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var users []*auth.User
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &users, sql, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
