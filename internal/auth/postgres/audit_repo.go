// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package postgres

import (
	"context"

	"github.com/samber/oops"

	"github.com/tillhouse/tillhouse/internal/auth"
)

// AuditLog implements auth.AuditRecorder using PostgreSQL. Entries are
// append-only; nothing in the system reads them back.
type AuditLog struct {
	pool poolIface
}

// NewAuditLog creates a new AuditLog.
func NewAuditLog(pool poolIface) *AuditLog {
	return &AuditLog{pool: pool}
}

// Record implements auth.AuditRecorder.
func (l *AuditLog) Record(ctx context.Context, entry auth.AuditEntry) error {
	_, err := l.pool.Exec(ctx, `
		INSERT INTO audit_log (id, tenant_id, employee_id, action, outcome, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		entry.ID,
		entry.TenantID,
		entry.EmployeeID,
		entry.Action,
		entry.Outcome,
		entry.Detail,
		entry.CreatedAt,
	)
	if err != nil {
		return oops.Code("AUDIT_RECORD_FAILED").
			With("operation", "insert audit entry").
			With("action", entry.Action).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ auth.AuditRecorder = (*AuditLog)(nil)
