// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package permission

import (
	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// managerAdminOverrides lists admin-level permissions that managers
// receive anyway. The set is deliberately non-uniform: these four are
// tagged admin-level elsewhere but day-to-day manager work depends on
// them. Kept as data so the exception is auditable.
var managerAdminOverrides = map[string]struct{}{
	"employee_management":  {},
	"inventory_management": {},
	"reports":              {},
	"manage_shifts":        {},
}

// cashierRules is the hand-picked cashier grant. Patterns use '.' as
// the segment separator, so "pos.*" covers the point-of-sale category
// without reaching into sub-identifiers.
var cashierRules = presetRules{
	include: []string{"pos.*", "inventory.view", "loyalty.card_create"},
	exclude: []string{"pos.void"},
}

// presetRules selects catalog entries by identifier pattern.
type presetRules struct {
	include []string
	exclude []string
}

// compiledRules holds the glob-compiled form of presetRules.
type compiledRules struct {
	include []glob.Glob
	exclude []glob.Glob
}

func compileRules(r presetRules) (compiledRules, error) {
	compile := func(patterns []string) ([]glob.Glob, error) {
		out := make([]glob.Glob, 0, len(patterns))
		for _, p := range patterns {
			g, err := glob.Compile(p, '.')
			if err != nil {
				return nil, oops.In("permission").
					Code("INVALID_PRESET_PATTERN").
					With("pattern", p).
					Wrap(err)
			}
			out = append(out, g)
		}
		return out, nil
	}
	inc, err := compile(r.include)
	if err != nil {
		return compiledRules{}, err
	}
	exc, err := compile(r.exclude)
	if err != nil {
		return compiledRules{}, err
	}
	return compiledRules{include: inc, exclude: exc}, nil
}

func (r compiledRules) matches(id string) bool {
	for _, g := range r.exclude {
		if g.Match(id) {
			return false
		}
	}
	for _, g := range r.include {
		if g.Match(id) {
			return true
		}
	}
	return false
}

// cashierCompiled is built at init. The patterns are hardcoded; a
// compile failure is a code bug that should fail fast.
var cashierCompiled = func() compiledRules {
	c, err := compileRules(cashierRules)
	if err != nil {
		panic("invalid pattern in cashierRules: " + err.Error())
	}
	return c
}()

// ResolvePreset returns the default permission instances for a role
// within a tenant, stamped with the tenant's scope. An empty tenantID
// yields universally scoped instances rather than an error: creation
// flows can run before the tenant id is resolved from the identity
// provider.
//
// The result is a set; callers must not rely on order.
func ResolvePreset(role Role, tenantID string) []Permission {
	var out []Permission
	for _, p := range catalog {
		if presetIncludes(role, p) {
			out = append(out, p.Instance(tenantID))
		}
	}
	return out
}

// presetIncludes decides whether a catalog entry belongs to a role's
// preset. Unknown roles get nothing.
func presetIncludes(role Role, p Permission) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleManager:
		if p.Level != LevelAdmin {
			return true
		}
		_, ok := managerAdminOverrides[p.ID]
		return ok
	case RoleCashier:
		return cashierCompiled.matches(p.ID)
	default:
		return false
	}
}
