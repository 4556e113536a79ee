// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

// Package permission defines the permission catalog, tenant scoping,
// role presets, and normalization of stored permission data.
//
// Catalog entries are tenant-neutral templates. An employee holds
// instances: catalog entries stamped with a TenantScope. Two instances
// with the same ID but different tenants are not interchangeable.
package permission

// Category groups permissions by functional area.
type Category string

// Functional areas of the back office.
const (
	CategoryPointOfSale Category = "point-of-sale"
	CategoryInventory   Category = "inventory"
	CategorySuppliers   Category = "suppliers"
	CategoryEmployees   Category = "employees"
	CategoryReports     Category = "reports"
	CategorySettings    Category = "settings"
	CategoryPromotions  Category = "promotions"
	CategoryLoyalty     Category = "loyalty"
)

// CategoryFallback is stamped onto instances synthesized for
// identifiers missing from the catalog. Legacy data from before the
// catalog existed used "admin" here, so stored records still carry it.
const CategoryFallback Category = "admin"

// Level is a coarse severity ranking. It is not a strict lattice:
// preset filtering uses it, authorization checks do not.
type Level string

// Permission levels.
const (
	LevelRead  Level = "read"
	LevelWrite Level = "write"
	LevelAdmin Level = "admin"
)

// TenantScope identifies the tenant a permission instance was granted
// under. The serialized form keeps the legacy "default" sentinel for
// instances that were written before tenant stamping existed; those
// match any tenant during the migration window.
type TenantScope string

// Universal marks an instance not yet scoped to a tenant. It applies
// within whatever tenant evaluates it.
const Universal TenantScope = "default"

// ScopeFor returns the scope for a tenant id, or Universal when the
// tenant is not yet known (creation flows can run before the tenant id
// is resolved from the identity provider).
func ScopeFor(tenantID string) TenantScope {
	if tenantID == "" {
		return Universal
	}
	return TenantScope(tenantID)
}

// Matches reports whether an instance with this scope is valid inside
// the given tenant.
func (s TenantScope) Matches(tenantID string) bool {
	return s == Universal || string(s) == tenantID
}

// IsUniversal reports whether the scope is the universal sentinel.
func (s TenantScope) IsUniversal() bool {
	return s == Universal
}

// Permission is a catalog entry or, when Tenant is set, a tenant-scoped
// instance held by an employee.
type Permission struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Level       Level       `json:"level"`
	Tenant      TenantScope `json:"tenantId,omitempty"`
}

// Instance returns a copy of the permission stamped with the scope for
// tenantID.
func (p Permission) Instance(tenantID string) Permission {
	p.Tenant = ScopeFor(tenantID)
	return p
}

// Role is an employee's role. Roles are not stored entities; they key
// into the preset resolver and grant the admin override.
type Role string

// Known roles.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}
