package recurring

import (
	"context"
	"time"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/audit"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// Service provides business logic for recurring rules and occurrences.
type Service struct {
	repo    Repository
	auditor audit.Recorder
}

// NewService creates a new recurring service.
func NewService(repo Repository, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{repo: repo, auditor: auditor}
}

// CreateRule validates and persists a new rule.
func (s *Service) CreateRule(ctx context.Context, r *Rule) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.CreateRule(ctx, r); err != nil {
		return err
	}

	s.recordChange(ctx, r.ID, audit.ActionCreate, map[string]any{
		"description": r.Description,
		"value":       r.Value.String(),
		"recurrence":  string(r.Recurrence),
		"startDate":   r.StartDate.String(),
	})

	logger.Info(ctx, "recurring rule created", "id", r.ID, "recurrence", r.Recurrence)
	return nil
}

// GetRule retrieves a rule.
func (s *Service) GetRule(ctx context.Context, ruleID id.ID) (*Rule, error) {
	return s.repo.GetRuleByID(ctx, ruleID)
}

// UpdateRule validates and persists rule changes.
func (s *Service) UpdateRule(ctx context.Context, r *Rule) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateRule(ctx, r); err != nil {
		return err
	}

	s.recordChange(ctx, r.ID, audit.ActionUpdate, map[string]any{
		"value":    r.Value.String(),
		"isActive": r.IsActive,
		"endDate":  r.EndDate.String(),
	})
	return nil
}

// DeactivateRule stops occurrence generation without touching history.
func (s *Service) DeactivateRule(ctx context.Context, ruleID id.ID) (*Rule, error) {
	r, err := s.repo.GetRuleByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return r, nil
	}
	r.IsActive = false
	r.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateRule(ctx, r); err != nil {
		return nil, err
	}

	s.recordChange(ctx, r.ID, audit.ActionUpdate, map[string]any{"isActive": false})
	return r, nil
}

// DeleteRule removes a rule that has no occurrences.
func (s *Service) DeleteRule(ctx context.Context, ruleID id.ID) error {
	if err := s.repo.DeleteRule(ctx, ruleID); err != nil {
		return err
	}
	s.recordChange(ctx, ruleID, audit.ActionDelete, nil)
	return nil
}

// ListRules retrieves all rules.
func (s *Service) ListRules(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}

// MarkOccurrencePaid flips the paid flag on an occurrence.
func (s *Service) MarkOccurrencePaid(ctx context.Context, occurrenceID id.ID, paid bool) (*Occurrence, error) {
	if err := s.repo.SetOccurrencePaid(ctx, occurrenceID, paid); err != nil {
		return nil, err
	}
	o, err := s.repo.GetOccurrenceByID(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}

	s.recordChange(ctx, o.ID, audit.ActionUpdate, map[string]any{"isPaid": paid})
	return o, nil
}

// ListOccurrencesByRange retrieves occurrences within the inclusive range.
func (s *Service) ListOccurrencesByRange(ctx context.Context, start, end types.Date) ([]*Occurrence, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.NewValidation("start and end dates are required")
	}
	if start.After(end) {
		return nil, apperror.NewValidation("start date must not be after end date")
	}
	return s.repo.ListOccurrencesByRange(ctx, start, end)
}

// ListOccurrencesByRule retrieves all occurrences of one rule.
func (s *Service) ListOccurrencesByRule(ctx context.Context, ruleID id.ID) ([]*Occurrence, error) {
	return s.repo.ListOccurrencesByRule(ctx, ruleID)
}

func (s *Service) recordChange(ctx context.Context, entityID id.ID, action audit.Action, changes map[string]any) {
	if err := s.auditor.RecordChange(ctx, "recurring_rule", entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit record failed", "entity", "recurring_rule", "id", entityID, "error", err)
	}
}
