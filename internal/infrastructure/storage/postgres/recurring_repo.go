package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/recurring"
)

var _ recurring.Repository = (*RecurringRepo)(nil)

var (
	ruleCols = []string{
		"id", "description", "value", "recurrence", "start_date", "end_date",
		"is_active", "created_at", "updated_at",
	}
	occurrenceCols = []string{"id", "rule_id", "due_date", "value", "is_paid", "created_at"}
)

// RecurringRepo is the PostgreSQL implementation of recurring.Repository.
type RecurringRepo struct {
	txm *TxManager
}

// NewRecurringRepo creates a new recurring repository.
func NewRecurringRepo(txm *TxManager) *RecurringRepo {
	return &RecurringRepo{txm: txm}
}

func (r *RecurringRepo) CreateRule(ctx context.Context, rule *recurring.Rule) error {
	q := Builder().
		Insert("recurring_expense_rules").
		Columns(ruleCols...).
		Values(
			rule.ID, rule.Description, rule.Value, rule.Recurrence,
			rule.StartDate, rule.EndDate, rule.IsActive,
			rule.CreatedAt, rule.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert rule: %w", err)
	}
	return nil
}

func (r *RecurringRepo) GetRuleByID(ctx context.Context, ruleID id.ID) (*recurring.Rule, error) {
	q := Builder().
		Select(ruleCols...).
		From("recurring_expense_rules").
		Where(squirrel.Eq{"id": ruleID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rule recurring.Rule
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rule, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("recurring_rule", ruleID.String())
		}
		return nil, fmt.Errorf("get rule: %w", err)
	}
	return &rule, nil
}

func (r *RecurringRepo) UpdateRule(ctx context.Context, rule *recurring.Rule) error {
	q := Builder().
		Update("recurring_expense_rules").
		Set("description", rule.Description).
		Set("value", rule.Value).
		Set("recurrence", rule.Recurrence).
		Set("start_date", rule.StartDate).
		Set("end_date", rule.EndDate).
		Set("is_active", rule.IsActive).
		Set("updated_at", rule.UpdatedAt).
		Where(squirrel.Eq{"id": rule.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update rule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("recurring_rule", rule.ID.String())
	}
	return nil
}

func (r *RecurringRepo) DeleteRule(ctx context.Context, ruleID id.ID) error {
	q := Builder().
		Delete("recurring_expense_rules").
		Where(squirrel.Eq{"id": ruleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return apperror.NewConflict("rule has generated occurrences, deactivate it instead").
				WithDetail("id", ruleID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete rule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("recurring_rule", ruleID.String())
	}
	return nil
}

func (r *RecurringRepo) ListRules(ctx context.Context) ([]*recurring.Rule, error) {
	q := Builder().
		Select(ruleCols...).
		From("recurring_expense_rules").
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rules []*recurring.Rule
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rules, sql, args...); err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return rules, nil
}

func (r *RecurringRepo) ListRulesCovering(ctx context.Context, asOf types.Date) ([]*recurring.Rule, error) {
	q := Builder().
		Select(ruleCols...).
		From("recurring_expense_rules").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"start_date": asOf}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": asOf},
		}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rules []*recurring.Rule
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rules, sql, args...); err != nil {
		return nil, fmt.Errorf("list covering rules: %w", err)
	}
	return rules, nil
}

// InsertOccurrenceIfAbsent relies on the UNIQUE(rule_id, due_date)
// constraint: ON CONFLICT DO NOTHING makes the insert a no-op when the
// occurrence already exists, so concurrent expander runs cannot create
// duplicates. RowsAffected distinguishes the two outcomes.
func (r *RecurringRepo) InsertOccurrenceIfAbsent(ctx context.Context, o *recurring.Occurrence) (bool, error) {
	q := Builder().
		Insert("recurring_expense_occurrences").
		Columns(occurrenceCols...).
		Values(o.ID, o.RuleID, o.DueDate, o.Value, o.IsPaid, o.CreatedAt).
		Suffix("ON CONFLICT (rule_id, due_date) DO NOTHING")

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("insert occurrence: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *RecurringRepo) GetOccurrenceByID(ctx context.Context, occurrenceID id.ID) (*recurring.Occurrence, error) {
	q := Builder().
		Select(occurrenceCols...).
		From("recurring_expense_occurrences").
		Where(squirrel.Eq{"id": occurrenceID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var o recurring.Occurrence
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("recurring_occurrence", occurrenceID.String())
		}
		return nil, fmt.Errorf("get occurrence: %w", err)
	}
	return &o, nil
}

func (r *RecurringRepo) SetOccurrencePaid(ctx context.Context, occurrenceID id.ID, paid bool) error {
	q := Builder().
		Update("recurring_expense_occurrences").
		Set("is_paid", paid).
		Where(squirrel.Eq{"id": occurrenceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set occurrence paid: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("recurring_occurrence", occurrenceID.String())
	}
	return nil
}

func (r *RecurringRepo) ListOccurrencesByRange(ctx context.Context, start, end types.Date) ([]*recurring.Occurrence, error) {
	q := Builder().
		Select(occurrenceCols...).
		From("recurring_expense_occurrences").
		Where(squirrel.GtOrEq{"due_date": start}).
		Where(squirrel.LtOrEq{"due_date": end}).
		OrderBy("due_date", "created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var occurrences []*recurring.Occurrence
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &occurrences, sql, args...); err != nil {
		return nil, fmt.Errorf("list occurrences: %w", err)
	}
	return occurrences, nil
}

func (r *RecurringRepo) ListOccurrencesByRule(ctx context.Context, ruleID id.ID) ([]*recurring.Occurrence, error) {
	q := Builder().
		Select(occurrenceCols...).
		From("recurring_expense_occurrences").
		Where(squirrel.Eq{"rule_id": ruleID}).
		OrderBy("due_date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var occurrences []*recurring.Occurrence
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &occurrences, sql, args...); err != nil {
		return nil, fmt.Errorf("list rule occurrences: %w", err)
	}
	return occurrences, nil
}
