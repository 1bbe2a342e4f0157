package category

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/tx"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// Service provides business logic for expense categories.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new category service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create validates and persists a new category with a unique name.
func (s *Service) Create(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByName(ctx, c.Name)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewDuplicate("category", "name", c.Name)
		}
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "category created", "id", c.ID, "name", c.Name)
	return nil
}

// GetByID retrieves a category.
func (s *Service) GetByID(ctx context.Context, categoryID id.ID) (*Category, error) {
	return s.repo.GetByID(ctx, categoryID)
}

// Update validates and persists category changes.
func (s *Service) Update(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, c)
}

// Delete removes a category that no expense references.
func (s *Service) Delete(ctx context.Context, categoryID id.ID) error {
	return s.repo.Delete(ctx, categoryID)
}

// List retrieves all categories.
func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}
