// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package permission_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillhouse/tillhouse/internal/permission"
)

func TestNormalize_BareIdentifier(t *testing.T) {
	got := permission.Normalize([]permission.Stored{permission.StoredID("pos.access")}, "T1")

	require.Len(t, got, 1)
	want, _ := permission.Lookup("pos.access")
	assert.Equal(t, "pos.access", got[0].ID)
	assert.Equal(t, want.Name, got[0].Name)
	assert.Equal(t, want.Category, got[0].Category)
	assert.Equal(t, want.Level, got[0].Level)
	assert.Equal(t, permission.TenantScope("T1"), got[0].Tenant)
}

func TestNormalize_UnknownIdentifierSynthesizes(t *testing.T) {
	got := permission.Normalize([]permission.Stored{permission.StoredID("unknown.permission.xyz")}, "T1")

	require.Len(t, got, 1)
	assert.Equal(t, "unknown.permission.xyz", got[0].ID)
	assert.Equal(t, "unknown.permission.xyz", got[0].Name)
	assert.Equal(t, "Permission", got[0].Description)
	assert.Equal(t, permission.CategoryFallback, got[0].Category)
	assert.Equal(t, permission.LevelRead, got[0].Level)
	assert.Equal(t, permission.TenantScope("T1"), got[0].Tenant)
}

func TestNormalize_RecordRestampedUnconditionally(t *testing.T) {
	// A record copied from another tenant self-heals to the live
	// employee's tenant.
	foreign, _ := permission.Lookup("inventory.view")
	foreign = foreign.Instance("other-tenant")

	got := permission.Normalize([]permission.Stored{permission.StoredRecord(foreign)}, "T1")

	require.Len(t, got, 1)
	assert.Equal(t, permission.TenantScope("T1"), got[0].Tenant)
}

func TestNormalize_DeduplicatesLastWriteWins(t *testing.T) {
	custom := permission.Permission{
		ID:          "pos.access",
		Name:        "Custom POS",
		Description: "Hand-tuned grant",
		Category:    permission.CategoryPointOfSale,
		Level:       permission.LevelWrite,
	}
	got := permission.Normalize([]permission.Stored{
		permission.StoredID("pos.access"),
		permission.StoredRecord(custom),
	}, "T1")

	require.Len(t, got, 1)
	assert.Equal(t, "Custom POS", got[0].Name)
}

func TestNormalize_Idempotent(t *testing.T) {
	stored := []permission.Stored{
		permission.StoredID("pos.access"),
		permission.StoredID("unknown.legacy"),
		permission.StoredRecord(permission.Permission{ID: "inventory.view", Name: "View Inventory"}),
	}

	once := permission.Normalize(stored, "T1")
	twice := permission.Normalize(permission.AsStored(once), "T1")

	assert.ElementsMatch(t, once, twice)
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Empty(t, permission.Normalize(nil, "T1"))
	assert.Empty(t, permission.Normalize([]permission.Stored{}, "T1"))
}

func TestStored_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{"bare identifier", `"pos.access"`, "pos.access"},
		{"full record", `{"id":"inventory.view","name":"View Inventory","tenantId":"biz9"}`, "inventory.view"},
		{"number is malformed", `42`, ""},
		{"object without id is malformed", `{"name":"nameless"}`, ""},
		{"null is malformed", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s permission.Stored
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s),
				"stored elements must never fail to decode")
			assert.Equal(t, tt.wantID, s.ID())
		})
	}
}

func TestStored_MalformedElementsDropped(t *testing.T) {
	var stored []permission.Stored
	raw := `["pos.access", 42, {"name":"nameless"}, {"id":"inventory.view"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 4)

	got := permission.Normalize(stored, "T1")
	assert.ElementsMatch(t, []string{"pos.access", "inventory.view"}, ids(got))
}

func TestStored_MarshalRoundTrip(t *testing.T) {
	stored := []permission.Stored{
		permission.StoredID("pos.access"),
		permission.StoredRecord(permission.Permission{ID: "inventory.view", Name: "View Inventory", Tenant: "biz1"}),
	}

	data, err := json.Marshal(stored)
	require.NoError(t, err)

	var back []permission.Stored
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, "pos.access", back[0].ID())
	assert.Equal(t, "inventory.view", back[1].ID())
}
