// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package permission

import "log/slog"

// Normalize converts a stored permission list into canonical
// tenant-scoped instances.
//
//   - Bare identifiers are resolved against the catalog. Identifiers
//     the catalog no longer knows (stale or renamed) synthesize a
//     minimal instance so an authorization check never fails on legacy
//     data, at the cost of under-describing it.
//   - Full records are re-stamped with the caller's tenant
//     unconditionally. A record's own stamp is not trusted: records
//     copied across tenants by accident self-heal here.
//   - Malformed elements are dropped with a diagnostic.
//
// Duplicates collapse by id, last write wins. The result is a set;
// callers must not rely on order. Normalizing an already-canonical
// list is a no-op up to set equality.
func Normalize(stored []Stored, tenantID string) []Permission {
	byID := make(map[string]int, len(stored))
	out := make([]Permission, 0, len(stored))

	for _, s := range stored {
		var inst Permission
		switch {
		case s.record != nil:
			inst = s.record.Instance(tenantID)
		case s.id != "":
			if p, ok := Lookup(s.id); ok {
				inst = p.Instance(tenantID)
			} else {
				slog.Warn("unknown permission identifier, synthesizing minimal instance",
					"id", s.id,
					"tenant", tenantID)
				inst = Permission{
					ID:          s.id,
					Name:        s.id,
					Description: "Permission",
					Category:    CategoryFallback,
					Level:       LevelRead,
				}.Instance(tenantID)
			}
		default:
			slog.Warn("dropping malformed stored permission element",
				"tenant", tenantID)
			continue
		}

		if i, seen := byID[inst.ID]; seen {
			out[i] = inst
			continue
		}
		byID[inst.ID] = len(out)
		out = append(out, inst)
	}

	return out
}
