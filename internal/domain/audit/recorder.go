// Package audit defines the change-log contract used by domain services.
package audit

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
)

// Action is the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Recorder appends entries to the audit log. Implementations must be
// best-effort: a failed append never fails the business operation, so
// services ignore the returned error after logging it.
type Recorder interface {
	RecordChange(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// Nop is a Recorder that discards everything. Used in tests and in the
// CLI tools that have no audit store.
type Nop struct{}

// RecordChange implements Recorder.
func (Nop) RecordChange(context.Context, string, id.ID, Action, map[string]any) error {
	return nil
}
