// Package category provides the expense category catalog.
package category

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
)

// Category groups expenses for reporting.
type Category struct {
	ID          id.ID     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCategory creates a new category.
func NewCategory(name string) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        id.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks category invariants.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}
