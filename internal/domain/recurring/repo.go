package recurring

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// Repository defines the interface for rule and occurrence persistence.
type Repository interface {
	// --- Rules ---

	CreateRule(ctx context.Context, r *Rule) error
	GetRuleByID(ctx context.Context, ruleID id.ID) (*Rule, error)
	UpdateRule(ctx context.Context, r *Rule) error

	// DeleteRule removes a rule without occurrences. Rules that
	// occurrences reference cannot be hard-deleted (FK RESTRICT
	// surfaces as a conflict); deactivate them instead.
	DeleteRule(ctx context.Context, ruleID id.ID) error

	// ListRules retrieves all rules ordered by creation time.
	ListRules(ctx context.Context) ([]*Rule, error)

	// ListRulesCovering retrieves active rules whose window covers the
	// given date: is_active AND start_date <= asOf AND
	// (end_date IS NULL OR end_date >= asOf).
	ListRulesCovering(ctx context.Context, asOf types.Date) ([]*Rule, error)

	// --- Occurrences ---

	// InsertOccurrenceIfAbsent atomically inserts the occurrence unless
	// one already exists for the same (rule, due date). Returns true
	// when a row was actually inserted.
	InsertOccurrenceIfAbsent(ctx context.Context, o *Occurrence) (bool, error)

	GetOccurrenceByID(ctx context.Context, occurrenceID id.ID) (*Occurrence, error)

	// SetOccurrencePaid flips the paid flag.
	SetOccurrencePaid(ctx context.Context, occurrenceID id.ID, paid bool) error

	// ListOccurrencesByRange retrieves occurrences with due date within
	// [start, end], both inclusive, ordered by due date.
	ListOccurrencesByRange(ctx context.Context, start, end types.Date) ([]*Occurrence, error)

	// ListOccurrencesByRule retrieves all occurrences of one rule.
	ListOccurrencesByRule(ctx context.Context, ruleID id.ID) ([]*Occurrence, error)
}
