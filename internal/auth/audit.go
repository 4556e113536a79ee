// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Audit actions.
const (
	AuditLoginEmail = "login.email"
	AuditLoginPIN   = "login.pin"
	AuditRoleChange = "employee.role_change"
	AuditCreate     = "employee.create"
)

// Audit outcomes.
const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeDenied  = "denied"
	AuditOutcomeError   = "error"
)

// AuditEntry records an authentication or lifecycle event. Entries are
// written best-effort and never verified.
type AuditEntry struct {
	ID         string
	TenantID   string
	EmployeeID string
	Action     string
	Outcome    string
	Detail     string
	CreatedAt  time.Time
}

// NewAuditEntry creates an entry with a fresh id and timestamp.
func NewAuditEntry(tenantID, employeeID, action, outcome, detail string) AuditEntry {
	return AuditEntry{
		ID:         ulid.Make().String(),
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Action:     action,
		Outcome:    outcome,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
}

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}
