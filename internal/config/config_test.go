// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillhouse/tillhouse/pkg/errutil"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tillhouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.String("database-url", "", "database connection URL")
	f.String("log-format", DefaultLogFormat, "log output format")
	f.String("metrics-addr", DefaultMetricsAddr, "metrics listen address")
	f.Duration("login-timeout", DefaultLoginTimeout, "identity provider timeout")
	return f
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DefaultMetricsAddr, cfg.MetricsAddr)
	assert.Equal(t, DefaultLoginTimeout, cfg.LoginTimeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
database_url: postgres://u:p@localhost/tillhouse
log_format: text
login_timeout: 3s
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost/tillhouse", cfg.DatabaseURL)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.LoginTimeout)
	assert.Equal(t, DefaultMetricsAddr, cfg.MetricsAddr, "untouched keys keep defaults")
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfigFile(t, `
log_format: text
metrics_addr: 0.0.0.0:9999
`)

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--log-format=json", "--login-timeout=5s"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat, "explicit flag wins over the file")
	assert.Equal(t, "0.0.0.0:9999", cfg.MetricsAddr, "file wins over unset flag")
	assert.Equal(t, 5*time.Second, cfg.LoginTimeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_NOT_FOUND")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad log format", "log_format: xml\n"},
		{"zero timeout", "login_timeout: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			_, err := Load(path, nil)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
		})
	}
}
