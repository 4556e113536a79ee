// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tillhouse/tillhouse/internal/observability"
	"github.com/tillhouse/tillhouse/internal/store"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the observability endpoints",
		Long: `Connect to the database and serve /metrics and the health endpoints
until interrupted. Readiness reflects database connectivity.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := requireDatabaseURL(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	server := observability.NewServer(cfg.MetricsAddr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})

	errCh, err := server.Start()
	if err != nil {
		return err
	}
	cmd.Printf("Serving metrics on %s\n", server.Addr())

	select {
	case serveErr := <-errCh:
		if serveErr != nil {
			return serveErr
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Stop(stopCtx)
}
