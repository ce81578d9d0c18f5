package logging

import (
	"go.uber.org/zap"
)

// AuditEventType names one kind of entry on the input tape.
type AuditEventType string

const (
	AuditInputAccepted AuditEventType = "input_accepted"
	AuditInputIgnored  AuditEventType = "input_ignored"
	AuditErrorOutcome  AuditEventType = "error_outcome"
	AuditImageBlocked  AuditEventType = "image_blocked"
	AuditConfigReload  AuditEventType = "config_reload"
)

// CategoryAudit is the category backing the input tape.
const CategoryAudit Category = "audit"

// Audit records a single tape entry. It is a no-op unless debug mode and the
// audit category are enabled.
func Audit(event AuditEventType, fields ...zap.Field) {
	if !IsCategoryEnabled(CategoryAudit) {
		return
	}
	Get(CategoryAudit).Info(string(event), fields...)
}
