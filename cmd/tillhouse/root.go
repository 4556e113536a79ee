// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tillhouse/tillhouse/internal/config"
	"github.com/tillhouse/tillhouse/internal/logging"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Tillhouse CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tillhouse",
		Short: "Tillhouse - multi-tenant POS back office",
		Long: `Tillhouse is the back-office service for a multi-tenant point-of-sale
platform: employee accounts, role presets, permission grants, and the
authorization checks the registers and the admin panel rely on.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("database-url", "", "PostgreSQL connection URL")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log output format (json or text)")
	cmd.PersistentFlags().String("metrics-addr", config.DefaultMetricsAddr, "metrics listen address")
	cmd.PersistentFlags().Duration("login-timeout", config.DefaultLoginTimeout, "identity provider call timeout")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewEmployeeCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}

// loadConfig resolves configuration for a subcommand and installs the
// default logger. cmd.Flags() includes the inherited persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.SetDefault("tillhouse", version, cfg.LogFormat)
	return cfg, nil
}

// requireDatabaseURL fetches config and rejects commands that cannot
// run without a database.
func requireDatabaseURL(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, oops.Code("CONFIG_INVALID").
			Errorf("database_url is required (set it in the config file or via --database-url)")
	}
	return cfg, nil
}
