// Package cashregister provides daily cash register entries.
package cashregister

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Entry records the cash register value for one calendar day.
type Entry struct {
	ID          id.ID       `db:"id" json:"id"`
	Date        types.Date  `db:"date" json:"date"`
	Value       types.Money `db:"value" json:"value"`
	Description *string     `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewEntry creates a new cash register entry.
func NewEntry(date types.Date, value types.Money) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        id.New(),
		Date:      date,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks entry invariants.
func (e *Entry) Validate(ctx context.Context) error {
	if e.Date.IsZero() {
		return apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	if e.Value.IsNegative() {
		return apperror.NewValidation("value cannot be negative").WithDetail("field", "value")
	}
	return nil
}
