package auth

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
)

// Repository defines the interface for user persistence.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update modifies an existing user.
	Update(ctx context.Context, user *User) error

	// ExistsByEmail checks if a user with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List retrieves all users ordered by creation time.
	List(ctx context.Context) ([]*User, error)
}
