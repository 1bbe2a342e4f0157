package income

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

// Service provides business logic for income entries.
type Service struct {
	repo      Repository
	products  product.Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new income service.
func NewService(repo Repository, products product.Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{repo: repo, products: products, txManager: txManager, auditor: auditor}
}

// Create validates and persists a new income with its lines. Lines that
// reference catalog products reduce stock by the sold quantity in the
// same transaction.
func (s *Service) Create(ctx context.Context, in *Income) error {
	if err := in.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for i := range in.Lines {
			if _, err := s.products.GetByID(ctx, in.Lines[i].ProductID); err != nil {
				return err
			}
		}
		if err := s.repo.Create(ctx, in); err != nil {
			return err
		}
		if len(in.Lines) > 0 {
			if err := s.repo.SaveLines(ctx, in.ID, in.Lines); err != nil {
				return err
			}
			for i := range in.Lines {
				if err := s.products.AdjustStock(ctx, in.Lines[i].ProductID, -in.Lines[i].Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordChange(ctx, in.ID, audit.ActionCreate, map[string]any{
		"description":  in.Description,
		"value":        in.Value.String(),
		"profitMargin": in.ProfitMargin.String(),
		"date":         in.Date.String(),
		"lines":        len(in.Lines),
	})

	logger.Info(ctx, "income created", "id", in.ID, "value", in.Value, "lines", len(in.Lines))
	return nil
}

// GetByID retrieves an income with its lines.
func (s *Service) GetByID(ctx context.Context, incomeID id.ID) (*Income, error) {
	return s.repo.GetByID(ctx, incomeID)
}

// Update validates and persists income changes, replacing its lines.
// Stock adjustments from the previous line set are rolled back and the
// new set applied, all in one transaction.
func (s *Service) Update(ctx context.Context, in *Income) error {
	if err := in.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		in.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, in); err != nil {
			return err
		}
		for i := range current.Lines {
			if err := s.products.AdjustStock(ctx, current.Lines[i].ProductID, current.Lines[i].Quantity); err != nil {
				return err
			}
		}
		if err := s.repo.SaveLines(ctx, in.ID, in.Lines); err != nil {
			return err
		}
		for i := range in.Lines {
			if err := s.products.AdjustStock(ctx, in.Lines[i].ProductID, -in.Lines[i].Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordChange(ctx, in.ID, audit.ActionUpdate, map[string]any{
		"value":        in.Value.String(),
		"profitMargin": in.ProfitMargin.String(),
		"lines":        len(in.Lines),
	})
	return nil
}

// Delete removes an income, its lines, and restores the stock its
// lines consumed.
func (s *Service) Delete(ctx context.Context, incomeID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		in, err := s.repo.GetByID(ctx, incomeID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, incomeID); err != nil {
			return err
		}
		for i := range in.Lines {
			if err := s.products.AdjustStock(ctx, in.Lines[i].ProductID, in.Lines[i].Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordChange(ctx, incomeID, audit.ActionDelete, nil)
	return nil
}

// ListByDateRange retrieves incomes within the inclusive range.
func (s *Service) ListByDateRange(ctx context.Context, start, end types.Date) ([]*Income, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.NewValidation("start and end dates are required")
	}
	if start.After(end) {
		return nil, apperror.NewValidation("start date must not be after end date")
	}
	return s.repo.ListByDateRange(ctx, start, end)
}

func (s *Service) recordChange(ctx context.Context, entityID id.ID, action audit.Action, changes map[string]any) {
	if err := s.auditor.RecordChange(ctx, "income", entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit record failed", "entity", "income", "id", entityID, "error", err)
	}
}
