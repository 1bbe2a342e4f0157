package cashregister

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// Service provides business logic for cash register entries.
type Service struct {
	repo Repository
}

// NewService creates a new cash register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new entry.
func (s *Service) Create(ctx context.Context, e *Entry) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return err
	}
	logger.Info(ctx, "cash register entry created", "id", e.ID, "date", e.Date)
	return nil
}

// GetByID retrieves an entry.
func (s *Service) GetByID(ctx context.Context, entryID id.ID) (*Entry, error) {
	return s.repo.GetByID(ctx, entryID)
}

// Update validates and persists entry changes.
func (s *Service) Update(ctx context.Context, e *Entry) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	e.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, e)
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, entryID id.ID) error {
	return s.repo.Delete(ctx, entryID)
}

// ListByDateRange retrieves entries within the inclusive range.
func (s *Service) ListByDateRange(ctx context.Context, start, end types.Date) ([]*Entry, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.NewValidation("start and end dates are required")
	}
	if start.After(end) {
		return nil, apperror.NewValidation("start date must not be after end date")
	}
	return s.repo.ListByDateRange(ctx, start, end)
}
