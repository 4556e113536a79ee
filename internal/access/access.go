// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

// Package access decides what an employee may see and do.
//
// All checks are synchronous, pure over their inputs, and fail closed:
// absence of data resolves to deny, never to an error. The only two
// built-in allows are the admin role override and the point-of-sale
// universal grant. Employees must arrive with permissions already
// normalized (see internal/permission).
package access

import (
	"log/slog"

	"github.com/tillhouse/tillhouse/internal/auth"
	"github.com/tillhouse/tillhouse/internal/observability"
)

// ViewPointOfSale is the one view every active employee may open
// without an explicit permission.
const ViewPointOfSale = "pos"

// viewPermissions maps a view key to the single permission that opens
// it. A view missing from this table is denied for everyone but
// admins; an unmapped view must never default to allowed.
var viewPermissions = map[string]string{
	"inventory":  "inventory.view",
	"suppliers":  "supplier.view",
	"employees":  "employee.view",
	"shifts":     "manage_shifts",
	"reports":    "reports",
	"settings":   "settings.edit",
	"promotions": "promotions.view",
	"loyalty":    "loyalty.view",
}

// actionPermissions maps an action key to its required permission.
// Unlike views there is no universal action: every action needs an
// explicit grant.
var actionPermissions = map[string]string{
	"sale.checkout":      "pos.access",
	"sale.discount":      "pos.discount",
	"sale.refund":        "pos.refund",
	"sale.void":          "pos.void",
	"product.edit":       "inventory.edit",
	"product.delete":     "inventory.delete",
	"supplier.edit":      "supplier_management",
	"employee.create":    "employee_management",
	"employee.edit":      "employee_management",
	"shift.edit":         "manage_shifts",
	"report.export":      "reports.export",
	"settings.edit":      "settings.edit",
	"promotion.schedule": "promotions_management",
	"loyalty.card":       "loyalty.card_create",
}

// HasPermission reports whether the employee holds permissionID within
// their own tenant.
//
// Admins pass unconditionally: the override trumps everything,
// including tenant checks, because an admin is trusted globally within
// their own session. Everyone else needs a normalized instance whose
// id matches and whose scope covers the employee's tenant.
func HasPermission(employee *auth.Employee, permissionID string) bool {
	if employee == nil || !employee.Active {
		return false
	}
	if employee.IsAdmin() {
		return true
	}
	for _, p := range employee.Permissions {
		if p.ID == permissionID && p.Tenant.Matches(employee.TenantID) {
			return true
		}
	}
	return false
}

// CanAccessView reports whether the employee may open the given view.
// The point-of-sale view is granted to any active employee regardless
// of permissions.
func CanAccessView(employee *auth.Employee, view string) bool {
	if employee == nil {
		return false
	}
	if employee.IsAdmin() {
		return true
	}
	if view == ViewPointOfSale {
		return employee.Active
	}

	required, ok := viewPermissions[view]
	if !ok {
		slog.Warn("no permission mapped for view, denying",
			"view", view,
			"employee_id", employee.ID)
		observability.RecordUnmappedDenial("view")
		return false
	}
	return HasPermission(employee, required)
}

// CanPerformAction reports whether the employee may perform the given
// action. There is no universal action grant.
func CanPerformAction(employee *auth.Employee, action string) bool {
	if employee == nil {
		return false
	}
	if employee.IsAdmin() {
		return true
	}

	required, ok := actionPermissions[action]
	if !ok {
		slog.Warn("no permission mapped for action, denying",
			"action", action,
			"employee_id", employee.ID)
		observability.RecordUnmappedDenial("action")
		return false
	}
	return HasPermission(employee, required)
}
