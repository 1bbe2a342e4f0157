package product

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// Service provides business logic for products.
type Service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update validates and persists product changes.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, p)
}

// Delete removes an unreferenced product.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	return s.repo.Delete(ctx, productID)
}

// List retrieves all products.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

// AdjustStock changes the stock level by delta (negative to consume).
func (s *Service) AdjustStock(ctx context.Context, productID id.ID, delta int) error {
	if err := s.repo.AdjustStock(ctx, productID, delta); err != nil {
		return err
	}
	logger.Info(ctx, "product stock adjusted", "id", productID, "delta", delta)
	return nil
}
