package recurring

import (
	"context"
	"fmt"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/tx"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// Expander materializes due occurrences of active rules.
//
// For an as-of date it guarantees that every rule whose window covers
// that date has exactly one occurrence row dated that day. Uniqueness
// is enforced by the store's (rule_id, due_date) key, and the whole run
// executes inside a single transaction, so a mid-run failure commits
// nothing and overlapping invocations cannot double-insert.
//
// The as-of date is always supplied by the caller; the expander never
// reads the system clock.
type Expander struct {
	repo      Repository
	txManager tx.Manager
}

// NewExpander creates a new expander.
func NewExpander(repo Repository, txManager tx.Manager) *Expander {
	return &Expander{repo: repo, txManager: txManager}
}

// Run expands all rules due on asOf and returns how many occurrence
// rows were newly created. Reruns for the same date create nothing.
func (e *Expander) Run(ctx context.Context, asOf types.Date) (int, error) {
	if asOf.IsZero() {
		return 0, apperror.NewValidation("as-of date is required").WithDetail("field", "asOf")
	}

	created := 0
	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rules, err := e.repo.ListRulesCovering(ctx, asOf)
		if err != nil {
			return fmt.Errorf("list rules covering %s: %w", asOf, err)
		}

		for _, rule := range rules {
			// The window check fires every day the rule is in force;
			// the stored cadence is deliberately not consulted here.
			inserted, err := e.repo.InsertOccurrenceIfAbsent(ctx, NewOccurrence(rule, asOf))
			if err != nil {
				return fmt.Errorf("insert occurrence for rule %s: %w", rule.ID, err)
			}
			if inserted {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "recurring expansion complete", "as_of", asOf, "created", created)
	return created, nil
}
