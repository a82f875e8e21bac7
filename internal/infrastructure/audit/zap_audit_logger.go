package audit

import (
	"context"

	"github.com/hostelops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ZapAuditLogger writes the audit trail to the structured log. Durable audit
// storage lives outside this service; the log stream is the hand-off point.
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger creates an audit logger writing to a named zap child
func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// LogAction records one audit entry. It never fails; callers treat audit as
// best-effort either way.
func (l *ZapAuditLogger) LogAction(_ context.Context, entry shared.AuditEntry) error {
	fields := []zap.Field{
		zap.String("actor", entry.Actor.String()),
		zap.String("actor_kind", string(entry.Actor.Kind)),
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID.String()),
		zap.String("action", string(entry.Action)),
	}
	if entry.Actor.Role != "" {
		fields = append(fields, zap.String("actor_role", entry.Actor.Role))
	}
	if entry.BeforeState != nil {
		fields = append(fields, zap.Any("before", entry.BeforeState))
	}
	if entry.AfterState != nil {
		fields = append(fields, zap.Any("after", entry.AfterState))
	}

	l.logger.Info("audit", fields...)
	return nil
}

var _ shared.AuditLogger = (*ZapAuditLogger)(nil)
