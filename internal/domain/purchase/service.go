package purchase

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/tx"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/audit"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/product"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// Service provides business logic for product purchases.
type Service struct {
	repo      Repository
	products  product.Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new purchase service.
func NewService(repo Repository, products product.Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{repo: repo, products: products, txManager: txManager, auditor: auditor}
}

// Create validates and persists a new purchase. When the purchase is
// linked to a catalog product, its stock goes up by the purchased
// quantity in the same transaction.
func (s *Service) Create(ctx context.Context, p *ProductPurchase) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if p.ProductID != nil {
			if _, err := s.products.GetByID(ctx, *p.ProductID); err != nil {
				return err
			}
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		if p.ProductID != nil {
			return s.products.AdjustStock(ctx, *p.ProductID, p.Quantity)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordChange(ctx, p.ID, audit.ActionCreate, map[string]any{
		"description": p.Description,
		"value":       p.Value.String(),
		"quantity":    p.Quantity,
		"date":        p.Date.String(),
	})

	logger.Info(ctx, "product purchase created", "id", p.ID, "value", p.Value, "quantity", p.Quantity)
	return nil
}

// GetByID retrieves a purchase.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*ProductPurchase, error) {
	return s.repo.GetByID(ctx, purchaseID)
}

// Update validates and persists purchase changes. Stock follows the
// link: same product gets the quantity difference, while a changed,
// added, or removed link rolls back the old contribution and applies
// the new one.
func (s *Service) Update(ctx context.Context, p *ProductPurchase) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if p.ProductID != nil {
			if _, err := s.products.GetByID(ctx, *p.ProductID); err != nil {
				return err
			}
		}
		p.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}

		sameProduct := p.ProductID != nil && current.ProductID != nil && *p.ProductID == *current.ProductID
		if sameProduct {
			if delta := p.Quantity - current.Quantity; delta != 0 {
				return s.products.AdjustStock(ctx, *p.ProductID, delta)
			}
			return nil
		}
		if current.ProductID != nil {
			if err := s.products.AdjustStock(ctx, *current.ProductID, -current.Quantity); err != nil {
				return err
			}
		}
		if p.ProductID != nil {
			return s.products.AdjustStock(ctx, *p.ProductID, p.Quantity)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordChange(ctx, p.ID, audit.ActionUpdate, map[string]any{
		"value":    p.Value.String(),
		"quantity": p.Quantity,
		"isPaid":   p.IsPaid,
	})
	return nil
}

// MarkPaid flips the paid flag on a purchase.
func (s *Service) MarkPaid(ctx context.Context, purchaseID id.ID, paid bool) (*ProductPurchase, error) {
	p, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	p.MarkPaid(paid)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.recordChange(ctx, p.ID, audit.ActionUpdate, map[string]any{"isPaid": paid})
	return p, nil
}

// Delete removes a purchase and rolls back its stock contribution when
// the purchase is linked to a catalog product.
func (s *Service) Delete(ctx context.Context, purchaseID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, purchaseID); err != nil {
			return err
		}
		if p.ProductID != nil {
			return s.products.AdjustStock(ctx, *p.ProductID, -p.Quantity)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordChange(ctx, purchaseID, audit.ActionDelete, nil)
	return nil
}

// ListByDateRange retrieves purchases within the inclusive range.
func (s *Service) ListByDateRange(ctx context.Context, start, end types.Date) ([]*ProductPurchase, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.NewValidation("start and end dates are required")
	}
	if start.After(end) {
		return nil, apperror.NewValidation("start date must not be after end date")
	}
	return s.repo.ListByDateRange(ctx, start, end)
}

func (s *Service) recordChange(ctx context.Context, entityID id.ID, action audit.Action, changes map[string]any) {
	if err := s.auditor.RecordChange(ctx, "product_purchase", entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit record failed", "entity", "product_purchase", "id", entityID, "error", err)
	}
}
