// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/tillhouse/tillhouse/internal/permission"
)

// ManagementService handles the employee lifecycle.
//
// Permission recomputation is deliberately asymmetric: Create (without
// an explicit list) and SetRole consult the preset resolver, Update
// never does. Managers hand-tune grants after the initial role
// assignment, and a recompute-on-save would silently strip them.
type ManagementService struct {
	employees EmployeeStore
	audit     AuditRecorder
	logger    *slog.Logger
}

// NewManagementService creates a ManagementService. The audit recorder
// may be nil.
func NewManagementService(employees EmployeeStore, audit AuditRecorder, logger *slog.Logger) (*ManagementService, error) {
	if employees == nil {
		return nil, oops.Code("EMPLOYEE_INVALID_DEPS").New("employees store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ManagementService{employees: employees, audit: audit, logger: logger}, nil
}

// Create persists a new employee. A missing id is minted. When the
// record carries no permission list, the preset for its role and
// tenant is seeded; an explicit list is stored as given.
func (s *ManagementService) Create(ctx context.Context, employee *Employee) error {
	if employee == nil {
		return oops.Code("EMPLOYEE_INVALID").New("employee cannot be nil")
	}
	if !employee.Role.Valid() {
		return oops.Code("EMPLOYEE_INVALID_ROLE").
			With("role", string(employee.Role)).
			New("unknown role")
	}

	if employee.ID == "" {
		employee.ID = ulid.Make().String()
	}
	now := time.Now()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	if len(employee.StoredPermissions) == 0 {
		preset := permission.ResolvePreset(employee.Role, employee.TenantID)
		employee.StoredPermissions = permission.AsStored(preset)
	}

	if err := s.employees.Put(ctx, employee); err != nil {
		return oops.Code("EMPLOYEE_CREATE_FAILED").
			With("operation", "put employee").
			With("employee_id", employee.ID).
			Wrap(err)
	}

	s.recordAudit(ctx, NewAuditEntry(employee.TenantID, employee.ID, AuditCreate, AuditOutcomeSuccess, string(employee.Role)))
	return nil
}

// SetRole changes an employee's role and replaces the permission list
// with the preset for the new role. This is the only mutation that
// recomputes permissions.
func (s *ManagementService) SetRole(ctx context.Context, employeeID string, role permission.Role) (*Employee, error) {
	if !role.Valid() {
		return nil, oops.Code("EMPLOYEE_INVALID_ROLE").
			With("role", string(role)).
			New("unknown role")
	}

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, oops.Code("EMPLOYEE_SET_ROLE_FAILED").
			With("operation", "get employee by id").
			With("employee_id", employeeID).
			Wrap(err)
	}

	previous := employee.Role
	employee.Role = role
	employee.StoredPermissions = permission.AsStored(permission.ResolvePreset(role, employee.TenantID))
	employee.Permissions = nil
	employee.UpdatedAt = time.Now()

	if err := s.employees.Put(ctx, employee); err != nil {
		return nil, oops.Code("EMPLOYEE_SET_ROLE_FAILED").
			With("operation", "put employee").
			With("employee_id", employeeID).
			Wrap(err)
	}

	s.recordAudit(ctx, NewAuditEntry(employee.TenantID, employee.ID, AuditRoleChange, AuditOutcomeSuccess,
		string(previous)+" -> "+string(role)))
	return employee, nil
}

// Update persists profile edits. The stored permission list rides
// along untouched; see the type doc for why there is no recompute.
func (s *ManagementService) Update(ctx context.Context, employee *Employee) error {
	if employee == nil || employee.ID == "" {
		return oops.Code("EMPLOYEE_INVALID").New("employee id is required")
	}
	employee.UpdatedAt = time.Now()

	if err := s.employees.Put(ctx, employee); err != nil {
		return oops.Code("EMPLOYEE_UPDATE_FAILED").
			With("operation", "put employee").
			With("employee_id", employee.ID).
			Wrap(err)
	}
	return nil
}

func (s *ManagementService) recordAudit(ctx context.Context, entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("audit record failed", "action", entry.Action, "error", err)
	}
}
