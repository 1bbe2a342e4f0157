package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/tx"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/audit"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// Service provides business logic for expenses.
type Service struct {
	repo      Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new expense service.
func NewService(repo Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{repo: repo, txManager: txManager, auditor: auditor}
}

// Create validates and persists a new expense.
func (s *Service) Create(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return err
	}

	s.recordChange(ctx, e.ID, audit.ActionCreate, map[string]any{
		"description": e.Description,
		"value":       e.Value.String(),
		"dueDate":     e.DueDate.String(),
		"source":      string(e.Source),
	})

	logger.Info(ctx, "expense created", "id", e.ID, "source", e.Source, "value", e.Value)
	return nil
}

// CreateInstallments splits a total value into count monthly expenses
// sharing one installment group. Rounding leftovers go to the first part
// so the parts always add up to the total.
func (s *Service) CreateInstallments(ctx context.Context, template *Expense, total types.Money, count int) ([]*Expense, error) {
	if count < 2 {
		return nil, apperror.NewValidation("installment count must be at least 2").WithDetail("field", "installments")
	}
	if total.IsNegative() {
		return nil, apperror.NewValidation("value cannot be negative").WithDetail("field", "value")
	}

	part := total.Div(decimal.NewFromInt(int64(count))).Round(2)
	first := total.Sub(part.Mul(decimal.NewFromInt(int64(count - 1))))

	groupID := id.New()
	expenses := make([]*Expense, 0, count)
	for i := 0; i < count; i++ {
		value := part
		if i == 0 {
			value = first
		}
		e := NewExpense(
			fmt.Sprintf("%s (%d/%d)", template.Description, i+1, count),
			value,
			dueDateForInstallment(template.DueDate, i),
			template.Source,
		)
		e.CategoryID = template.CategoryID
		e.InstallmentGroupID = &groupID
		if err := e.Validate(ctx); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.CreateBatch(ctx, expenses)
	})
	if err != nil {
		return nil, err
	}

	s.recordChange(ctx, groupID, audit.ActionCreate, map[string]any{
		"installments": count,
		"total":        total.String(),
		"description":  template.Description,
	})

	logger.Info(ctx, "installment expenses created", "group_id", groupID, "count", count, "total", total)
	return expenses, nil
}

// dueDateForInstallment shifts the first due date by whole months,
// clamping to the last day of shorter months.
func dueDateForInstallment(first types.Date, n int) types.Date {
	if n == 0 {
		return first
	}
	t := first.Time()
	shifted := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(shifted.Year(), shifted.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return types.NewDate(shifted.Year(), shifted.Month(), day)
}

// GetByID retrieves an expense.
func (s *Service) GetByID(ctx context.Context, expenseID id.ID) (*Expense, error) {
	return s.repo.GetByID(ctx, expenseID)
}

// Update validates and persists expense changes.
func (s *Service) Update(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	e.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return err
	}

	s.recordChange(ctx, e.ID, audit.ActionUpdate, map[string]any{
		"value":   e.Value.String(),
		"dueDate": e.DueDate.String(),
		"isPaid":  e.IsPaid,
	})
	return nil
}

// MarkPaid flips the paid flag on an expense.
func (s *Service) MarkPaid(ctx context.Context, expenseID id.ID, paid bool) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	e.MarkPaid(paid)
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.recordChange(ctx, e.ID, audit.ActionUpdate, map[string]any{"isPaid": paid})
	return e, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, expenseID id.ID) error {
	if err := s.repo.Delete(ctx, expenseID); err != nil {
		return err
	}
	s.recordChange(ctx, expenseID, audit.ActionDelete, nil)
	return nil
}

// List retrieves expenses matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	if !filter.Start.IsZero() && !filter.End.IsZero() && filter.Start.After(filter.End) {
		return nil, apperror.NewValidation("start date must not be after end date")
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) recordChange(ctx context.Context, entityID id.ID, action audit.Action, changes map[string]any) {
	if err := s.auditor.RecordChange(ctx, "expense", entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit record failed", "entity", "expense", "id", entityID, "error", err)
	}
}
