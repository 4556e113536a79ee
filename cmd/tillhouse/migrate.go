// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package main

import (
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tillhouse/tillhouse/internal/store"
)

// NewMigrateCmd creates the migrate subcommand tree.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	cmd.AddCommand(newMigrateStatusCmd())
	cmd.AddCommand(newMigrateForceCmd())

	return cmd
}

// withMigrator handles the shared setup and teardown around a single
// migrator operation.
func withMigrator(cmd *cobra.Command, fn func(*store.Migrator) error) error {
	cfg, err := requireDatabaseURL(cmd)
	if err != nil {
		return err
	}

	migrator, err := store.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	return fn(migrator)
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				cmd.Println("Migrations applied")
				return nil
			})
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations (destructive)",
		Long:  `Roll back all migrations to version 0. This drops every table, including employees and the audit log.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return oops.Code("CONFIRMATION_REQUIRED").
					Errorf("migrate down drops all data; re-run with --yes to confirm")
			}
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				cmd.Println("Migrations rolled back")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the destructive rollback")
	return cmd
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 && !dirty {
					cmd.Println("No migrations applied")
					return nil
				}
				cmd.Printf("Version: %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	}
}

func newMigrateForceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Set the migration version without running migrations",
		Long:  `Set the recorded migration version without running any migrations. Use only to recover from a dirty state after repairing the database by hand.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.Code("INVALID_VERSION").
					With("argument", args[0]).
					Wrap(err)
			}
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Force(version); err != nil {
					return err
				}
				cmd.Printf("Forced migration version to %d\n", version)
				return nil
			})
		},
	}
}
