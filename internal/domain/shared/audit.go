package shared

import (
	"context"

	"github.com/google/uuid"
)

// AuditAction represents the kind of change being audited
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// IsValid checks if the action is a valid AuditAction
func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// AuditEntry captures who did what to which entity, with before/after snapshots
type AuditEntry struct {
	Actor       Actor
	EntityType  string
	EntityID    uuid.UUID
	Action      AuditAction
	BeforeState map[string]any
	AfterState  map[string]any
}

// AuditLogger is the collaborator contract for the audit trail. Persistence of
// the trail lives outside this module. Calls are best-effort: a failure must
// never roll back or fail the operation being audited.
type AuditLogger interface {
	LogAction(ctx context.Context, entry AuditEntry) error
}

// NopAuditLogger discards all entries. Used in tests and as a safe default.
type NopAuditLogger struct{}

// LogAction discards the entry
func (NopAuditLogger) LogAction(context.Context, AuditEntry) error { return nil }

var _ AuditLogger = NopAuditLogger{}
