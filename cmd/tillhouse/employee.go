// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package main

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tillhouse/tillhouse/internal/auth"
	authpg "github.com/tillhouse/tillhouse/internal/auth/postgres"
	"github.com/tillhouse/tillhouse/internal/permission"
	"github.com/tillhouse/tillhouse/internal/store"
)

// NewEmployeeCmd creates the employee subcommand tree.
func NewEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employee accounts",
	}

	cmd.AddCommand(newEmployeeCreateCmd())
	cmd.AddCommand(newEmployeeSetRoleCmd())
	cmd.AddCommand(newEmployeeShowCmd())

	return cmd
}

// withManagement connects to the database and hands the callback a
// ready ManagementService plus the raw store for reads.
func withManagement(cmd *cobra.Command, fn func(ctx context.Context, svc *auth.ManagementService, employees auth.EmployeeStore) error) error {
	cfg, err := requireDatabaseURL(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var pool *pgxpool.Pool
	pool, err = store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	employees := authpg.NewEmployeeRepository(pool)
	svc, err := auth.NewManagementService(employees, authpg.NewAuditLog(pool), nil)
	if err != nil {
		return err
	}

	return fn(ctx, svc, employees)
}

func newEmployeeCreateCmd() *cobra.Command {
	employee := &auth.Employee{Active: true}
	var role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee account",
		Long: `Create an employee account. Unless --permission is repeated to give
an explicit grant list, the permissions for the chosen role are seeded
from the role preset, stamped with the employee's tenant.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if employee.TenantID == "" || employee.Email == "" {
				return oops.Code("EMPLOYEE_INVALID").
					Errorf("--tenant and --email are required")
			}
			employee.Role = permission.Role(role)

			permissionIDs, err := cmd.Flags().GetStringArray("permission")
			if err != nil {
				return oops.Wrap(err)
			}
			for _, id := range permissionIDs {
				employee.StoredPermissions = append(employee.StoredPermissions, permission.StoredID(id))
			}

			return withManagement(cmd, func(ctx context.Context, svc *auth.ManagementService, _ auth.EmployeeStore) error {
				if err := svc.Create(ctx, employee); err != nil {
					return err
				}
				cmd.Printf("Created employee %s (%s, role %s, %d permissions)\n",
					employee.ID, employee.Email, employee.Role, len(employee.StoredPermissions))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&employee.ID, "id", "", "employee id (minted when empty)")
	cmd.Flags().StringVar(&employee.TenantID, "tenant", "", "tenant (business) id")
	cmd.Flags().StringVar(&employee.Email, "email", "", "login email")
	cmd.Flags().StringVar(&employee.Name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(permission.RoleCashier), "role (admin, manager, cashier)")
	cmd.Flags().StringVar(&employee.PIN, "pin", "", "register PIN")
	cmd.Flags().StringVar(&employee.ProviderCredential, "provider-credential", "", "identity provider credential (admin accounts)")
	cmd.Flags().BoolVar(&employee.Active, "active", true, "whether the account starts active")
	cmd.Flags().StringArray("permission", nil, "explicit permission id, repeatable (skips the role preset)")

	return cmd
}

func newEmployeeSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <employee-id> <role>",
		Short: "Change an employee's role",
		Long: `Change an employee's role. The stored permission list is replaced
with the preset for the new role; hand-tuned grants are discarded.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManagement(cmd, func(ctx context.Context, svc *auth.ManagementService, _ auth.EmployeeStore) error {
				employee, err := svc.SetRole(ctx, args[0], permission.Role(args[1]))
				if err != nil {
					return err
				}
				cmd.Printf("Employee %s is now %s with %d permissions\n",
					employee.ID, employee.Role, len(employee.StoredPermissions))
				return nil
			})
		},
	}
}

func newEmployeeShowCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <employee-id>",
		Short: "Print an employee record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManagement(cmd, func(ctx context.Context, _ *auth.ManagementService, employees auth.EmployeeStore) error {
				employee, err := employees.GetByID(ctx, args[0])
				if err != nil {
					return oops.Code("EMPLOYEE_LOOKUP_FAILED").
						With("employee_id", args[0]).
						Wrap(err)
				}

				var out any = employee
				if !raw {
					// Render the canonical tenant-stamped grants instead of
					// the stored mixed-shape list.
					employee.NormalizePermissions()
					out = struct {
						*auth.Employee
						StoredPermissions []permission.Stored     `json:"-"`
						Permissions       []permission.Permission `json:"permissions"`
					}{employee, nil, employee.Permissions}
				}

				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return oops.Wrap(err)
				}
				cmd.Println(string(data))
				return nil
			})
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the stored permission list without normalizing")
	return cmd
}
