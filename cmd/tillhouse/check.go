// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tillhouse/tillhouse/internal/access"
	"github.com/tillhouse/tillhouse/internal/auth"
)

// checkConfig holds the grant queries for a single check invocation.
type checkConfig struct {
	permissions []string
	views       []string
	actions     []string
}

// NewCheckCmd creates the check subcommand.
func NewCheckCmd() *cobra.Command {
	cfg := &checkConfig{}

	cmd := &cobra.Command{
		Use:   "check <employee-id>",
		Short: "Answer authorization questions for an employee",
		Long: `Load an employee, normalize their stored permissions, and answer the
same allow/deny questions the registers and the admin panel ask.
Exits non-zero when any queried grant is denied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(cfg.permissions)+len(cfg.views)+len(cfg.actions) == 0 {
				return oops.Code("CHECK_INVALID").
					Errorf("nothing to check; pass --permission, --view, or --action")
			}
			return withManagement(cmd, func(ctx context.Context, _ *auth.ManagementService, employees auth.EmployeeStore) error {
				employee, err := employees.GetByID(ctx, args[0])
				if err != nil {
					return oops.Code("EMPLOYEE_LOOKUP_FAILED").
						With("employee_id", args[0]).
						Wrap(err)
				}
				employee.NormalizePermissions()
				return runChecks(cmd, employee, cfg)
			})
		},
	}

	cmd.Flags().StringArrayVar(&cfg.permissions, "permission", nil, "permission id to check, repeatable")
	cmd.Flags().StringArrayVar(&cfg.views, "view", nil, "view key to check, repeatable")
	cmd.Flags().StringArrayVar(&cfg.actions, "action", nil, "action key to check, repeatable")

	return cmd
}

func runChecks(cmd *cobra.Command, employee *auth.Employee, cfg *checkConfig) error {
	denied := 0
	report := func(kind, key string, allowed bool) {
		verdict := "allow"
		if !allowed {
			verdict = "deny"
			denied++
		}
		cmd.Printf("%s\t%s\t%s\n", kind, key, verdict)
	}

	for _, id := range cfg.permissions {
		report("permission", id, access.HasPermission(employee, id))
	}
	for _, view := range cfg.views {
		report("view", view, access.CanAccessView(employee, view))
	}
	for _, action := range cfg.actions {
		report("action", action, access.CanPerformAction(employee, action))
	}

	if denied > 0 {
		return oops.Code("CHECK_DENIED").
			With("denied", denied).
			Errorf("%d of %d checks denied", denied, len(cfg.permissions)+len(cfg.views)+len(cfg.actions))
	}
	return nil
}
