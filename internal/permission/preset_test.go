// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillhouse/tillhouse/internal/permission"
)

func ids(perms []permission.Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, p.ID)
	}
	return out
}

func TestResolvePreset_Admin(t *testing.T) {
	preset := permission.ResolvePreset(permission.RoleAdmin, "biz1")

	assert.ElementsMatch(t, ids(permission.Catalog()), ids(preset),
		"admin preset must cover the entire catalog")
	for _, p := range preset {
		assert.Equal(t, permission.TenantScope("biz1"), p.Tenant)
	}
}

func TestResolvePreset_Manager(t *testing.T) {
	preset := permission.ResolvePreset(permission.RoleManager, "biz1")
	got := ids(preset)

	// Admin-level permissions on the explicit override list stay.
	assert.Contains(t, got, "employee_management")
	assert.Contains(t, got, "inventory_management")
	assert.Contains(t, got, "reports")
	assert.Contains(t, got, "manage_shifts")

	// Admin-level permissions off the list do not.
	assert.NotContains(t, got, "settings.edit")
	assert.NotContains(t, got, "inventory.delete")

	// Everything below admin level stays.
	assert.Contains(t, got, "pos.access")
	assert.Contains(t, got, "supplier_management")
	assert.Contains(t, got, "promotions_management")
}

func TestResolvePreset_Cashier(t *testing.T) {
	preset := permission.ResolvePreset(permission.RoleCashier, "biz1")

	assert.ElementsMatch(t,
		[]string{"pos.access", "pos.discount", "pos.refund", "inventory.view", "loyalty.card_create"},
		ids(preset))
}

func TestResolvePreset_TenantStamping(t *testing.T) {
	roles := []permission.Role{permission.RoleAdmin, permission.RoleManager, permission.RoleCashier}
	for _, role := range roles {
		t.Run(string(role), func(t *testing.T) {
			t1 := permission.ResolvePreset(role, "biz1")
			t2 := permission.ResolvePreset(role, "biz2")

			// Same identifiers, different stamps: no cross-tenant
			// instance identity.
			assert.ElementsMatch(t, ids(t1), ids(t2))
			for _, p := range t1 {
				assert.Equal(t, permission.TenantScope("biz1"), p.Tenant)
			}
			for _, p := range t2 {
				assert.Equal(t, permission.TenantScope("biz2"), p.Tenant)
			}
		})
	}
}

func TestResolvePreset_EmptyTenantStampsUniversal(t *testing.T) {
	preset := permission.ResolvePreset(permission.RoleCashier, "")
	require.NotEmpty(t, preset)
	for _, p := range preset {
		assert.Equal(t, permission.Universal, p.Tenant)
	}
}

func TestResolvePreset_UnknownRole(t *testing.T) {
	assert.Empty(t, permission.ResolvePreset(permission.Role("owner"), "biz1"))
}

func TestResolvePreset_Deterministic(t *testing.T) {
	a := permission.ResolvePreset(permission.RoleManager, "biz1")
	b := permission.ResolvePreset(permission.RoleManager, "biz1")
	assert.ElementsMatch(t, a, b)
}
