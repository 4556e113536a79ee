// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

// Package config loads back-office configuration from an optional yaml
// file layered under command-line flags.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Default values.
const (
	DefaultLogFormat    = "json"
	DefaultMetricsAddr  = "127.0.0.1:9100"
	DefaultLoginTimeout = 10 * time.Second
)

// Config holds process configuration.
type Config struct {
	DatabaseURL  string        `koanf:"database_url"`
	LogFormat    string        `koanf:"log_format"`
	MetricsAddr  string        `koanf:"metrics_addr"`
	LoginTimeout time.Duration `koanf:"login_timeout"`
}

// Validate checks settings that every command depends on. Commands
// that need the database check DatabaseURL themselves.
func (c *Config) Validate() error {
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").
			Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.LoginTimeout <= 0 {
		return oops.Code("CONFIG_INVALID").
			Errorf("login_timeout must be positive, got %s", c.LoginTimeout)
	}
	return nil
}

// Load builds a Config from defaults, an optional yaml file, and the
// given flag set, in increasing precedence. A missing file is only an
// error when its path was explicitly supplied.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, oops.Code("CONFIG_LOAD_FAILED").
					With("path", path).
					Wrap(err)
			}
			return nil, oops.Code("CONFIG_NOT_FOUND").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		// Flag names use dashes; config keys use underscores.
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("source", "flags").
				Wrap(err)
		}
	}

	cfg := &Config{
		LogFormat:    DefaultLogFormat,
		MetricsAddr:  DefaultMetricsAddr,
		LoginTimeout: DefaultLoginTimeout,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
