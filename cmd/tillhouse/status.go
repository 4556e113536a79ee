// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// EndpointStatus holds the probe result for one health endpoint.
type EndpointStatus struct {
	Endpoint string `json:"endpoint"`
	Healthy  bool   `json:"healthy"`
	Detail   string `json:"detail,omitempty"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput bool
}

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Probe the health endpoints of a running back office",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")
	return cmd
}

func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	appCfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	statuses := []EndpointStatus{
		probeEndpoint(appCfg.MetricsAddr, "/healthz/liveness"),
		probeEndpoint(appCfg.MetricsAddr, "/healthz/readiness"),
	}

	if cfg.jsonOutput {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(formatStatusTable(statuses))
	return nil
}

// probeEndpoint checks one health endpoint on the observability server.
func probeEndpoint(addr, path string) EndpointStatus {
	status := EndpointStatus{Endpoint: path}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + path)
	if err != nil {
		status.Detail = fmt.Sprintf("failed to connect: %v", err)
		return status
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		status.Detail = fmt.Sprintf("failed to read response: %v", err)
		return status
	}

	status.Healthy = resp.StatusCode == http.StatusOK
	status.Detail = strings.TrimSpace(string(body))
	return status
}

// formatStatusTable formats the probe results as a human-readable table.
func formatStatusTable(statuses []EndpointStatus) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "ENDPOINT\tSTATUS\tDETAIL")
	for _, status := range statuses {
		verdict := "down"
		if status.Healthy {
			verdict = "ok"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", status.Endpoint, verdict, status.Detail)
	}

	_ = w.Flush()
	return sb.String()
}
