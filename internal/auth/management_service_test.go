// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package auth_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tillhouse/tillhouse/internal/auth"
	"github.com/tillhouse/tillhouse/internal/auth/mocks"
	"github.com/tillhouse/tillhouse/internal/permission"
)

func storedIDs(t *testing.T, stored []permission.Stored) []string {
	t.Helper()
	out := make([]string, 0, len(stored))
	for _, s := range stored {
		out = append(out, s.ID())
	}
	return out
}

func TestManagementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds role preset when no permissions given", func(t *testing.T) {
		employees := mocks.NewMockEmployeeStore(t)
		svc, err := auth.NewManagementService(employees, nil, nil)
		require.NoError(t, err)

		var put *auth.Employee
		employees.On("Put", mock.Anything, mock.AnythingOfType("*auth.Employee")).
			Run(func(args mock.Arguments) { put = args.Get(1).(*auth.Employee) }).
			Return(nil)

		e := &auth.Employee{
			TenantID: "biz1",
			Name:     "New Manager",
			Role:     permission.RoleManager,
			Active:   true,
		}
		require.NoError(t, svc.Create(ctx, e))

		require.NotNil(t, put)
		assert.NotEmpty(t, put.ID, "id must be minted")
		got := storedIDs(t, put.StoredPermissions)
		assert.Contains(t, got, "employee_management")
		assert.NotContains(t, got, "settings.edit")
		assert.NotContains(t, got, "inventory.delete")
	})

	t.Run("explicit permission list is stored as given", func(t *testing.T) {
		employees := mocks.NewMockEmployeeStore(t)
		svc, err := auth.NewManagementService(employees, nil, nil)
		require.NoError(t, err)

		var put *auth.Employee
		employees.On("Put", mock.Anything, mock.AnythingOfType("*auth.Employee")).
			Run(func(args mock.Arguments) { put = args.Get(1).(*auth.Employee) }).
			Return(nil)

		e := &auth.Employee{
			TenantID:          "biz1",
			Role:              permission.RoleCashier,
			StoredPermissions: []permission.Stored{permission.StoredID("pos.access")},
		}
		require.NoError(t, svc.Create(ctx, e))
		assert.Equal(t, []string{"pos.access"}, storedIDs(t, put.StoredPermissions))
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		employees := mocks.NewMockEmployeeStore(t)
		svc, err := auth.NewManagementService(employees, nil, nil)
		require.NoError(t, err)

		err = svc.Create(ctx, &auth.Employee{TenantID: "biz1", Role: "owner"})
		require.Error(t, err)
		employees.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})
}

func TestManagementService_SetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces permissions with new preset", func(t *testing.T) {
		employees := mocks.NewMockEmployeeStore(t)
		svc, err := auth.NewManagementService(employees, nil, nil)
		require.NoError(t, err)

		existing := &auth.Employee{
			ID:       "emp42",
			TenantID: "biz1",
			Role:     permission.RoleManager,
			Active:   true,
			StoredPermissions: []permission.Stored{
				permission.StoredID("employee_management"),
				permission.StoredID("reports"),
			},
		}
		employees.On("GetByID", mock.Anything, "emp42").Return(existing, nil)

		var put *auth.Employee
		employees.On("Put", mock.Anything, mock.AnythingOfType("*auth.Employee")).
			Run(func(args mock.Arguments) { put = args.Get(1).(*auth.Employee) }).
			Return(nil)

		updated, err := svc.SetRole(ctx, "emp42", permission.RoleCashier)
		require.NoError(t, err)
		assert.Equal(t, permission.RoleCashier, updated.Role)

		got := storedIDs(t, put.StoredPermissions)
		assert.ElementsMatch(t,
			[]string{"pos.access", "pos.discount", "pos.refund", "inventory.view", "loyalty.card_create"},
			got, "old manager grants must be gone")
	})

	t.Run("role change is audited", func(t *testing.T) {
		employees := mocks.NewMockEmployeeStore(t)
		audit := mocks.NewMockAuditRecorder(t)
		svc, err := auth.NewManagementService(employees, audit, nil)
		require.NoError(t, err)

		employees.On("GetByID", mock.Anything, "emp42").
			Return(&auth.Employee{ID: "emp42", TenantID: "biz1", Role: permission.RoleCashier}, nil)
		employees.On("Put", mock.Anything, mock.Anything).Return(nil)
		audit.On("Record", mock.Anything, mock.MatchedBy(func(entry auth.AuditEntry) bool {
			return entry.Action == auth.AuditRoleChange && entry.Detail == "cashier -> manager"
		})).Return(nil).Once()

		_, err = svc.SetRole(ctx, "emp42", permission.RoleManager)
		require.NoError(t, err)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		employees := mocks.NewMockEmployeeStore(t)
		svc, err := auth.NewManagementService(employees, nil, nil)
		require.NoError(t, err)

		_, err = svc.SetRole(ctx, "emp42", permission.Role("owner"))
		require.Error(t, err)
	})
}

func TestManagementService_Update_DoesNotRecompute(t *testing.T) {
	// Plain edits must never touch the permission list: managers
	// hand-tune grants after the initial role assignment and a
	// recompute would silently strip them.
	ctx := context.Background()
	employees := mocks.NewMockEmployeeStore(t)
	svc, err := auth.NewManagementService(employees, nil, nil)
	require.NoError(t, err)

	handTuned := []permission.Stored{
		permission.StoredID("pos.access"),
		permission.StoredID("settings.edit"), // not in any cashier preset
	}
	var put *auth.Employee
	employees.On("Put", mock.Anything, mock.AnythingOfType("*auth.Employee")).
		Run(func(args mock.Arguments) { put = args.Get(1).(*auth.Employee) }).
		Return(nil)

	e := &auth.Employee{
		ID:                "emp42",
		TenantID:          "biz1",
		Role:              permission.RoleCashier,
		Name:              "Renamed Clerk",
		StoredPermissions: handTuned,
	}
	require.NoError(t, svc.Update(ctx, e))

	before, err := json.Marshal(handTuned)
	require.NoError(t, err)
	after, err := json.Marshal(put.StoredPermissions)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}
