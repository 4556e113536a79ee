// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package auth

import (
	"context"
	"time"

	"github.com/tillhouse/tillhouse/internal/permission"
)

// Employee is a back-office employee record, scoped to exactly one
// tenant (the business that employs them).
//
// StoredPermissions is the list exactly as persisted, which may mix
// bare identifiers with full records. Permissions is the canonical
// tenant-scoped form and is nil until NormalizePermissions runs;
// authorization checks must only ever see the canonical form.
type Employee struct {
	ID       string          `json:"id"`
	TenantID string          `json:"tenantId"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Role     permission.Role `json:"role"`
	Active   bool            `json:"active"`

	// PIN is compared as a raw string against the register keypad
	// entry. Stored unhashed for compatibility with existing records;
	// see the package doc.
	PIN string `json:"pin,omitempty"`

	// ProviderCredential is the delegated identity-provider secret
	// carried by admin accounts so a PIN login can also establish a
	// provider session.
	ProviderCredential string `json:"providerCredential,omitempty"`

	StoredPermissions []permission.Stored     `json:"permissions"`
	Permissions       []permission.Permission `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizePermissions derives the canonical permission instances from
// the stored list, stamped with the employee's own tenant.
func (e *Employee) NormalizePermissions() {
	e.Permissions = permission.Normalize(e.StoredPermissions, e.TenantID)
}

// IsAdmin reports whether the employee holds the admin role.
func (e *Employee) IsAdmin() bool {
	return e.Role == permission.RoleAdmin
}

// EmployeeStore manages employee persistence in the document store.
type EmployeeStore interface {
	// GetByEmail retrieves an employee by email (case-insensitive).
	// Returns ErrNotFound if no employee has the given email.
	GetByEmail(ctx context.Context, email string) (*Employee, error)

	// GetByID retrieves an employee by id.
	GetByID(ctx context.Context, id string) (*Employee, error)

	// Put stores an employee record, replacing any existing record
	// with the same id.
	Put(ctx context.Context, employee *Employee) error
}
