// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

// Package config loads service configuration from defaults, an optional
// YAML file, and command-line flags, in increasing priority.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	flag "github.com/spf13/pflag"
)

// jwtSecretEnv is the environment variable consulted when no secret is
// configured elsewhere. Secrets belong in the environment, not in files.
const jwtSecretEnv = "TASKNEST_JWT_SECRET"

// Config holds all service configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Database      DatabaseConfig      `koanf:"database"`
	Auth          AuthConfig          `koanf:"auth"`
	Log           LogConfig           `koanf:"log"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// ServerConfig holds the API listener settings.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Format string `koanf:"format"`
}

// ObservabilityConfig holds the metrics/health listener settings.
type ObservabilityConfig struct {
	Addr string `koanf:"addr"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Server:        ServerConfig{Addr: "127.0.0.1:8080"},
		Database:      DatabaseConfig{URL: "postgres://localhost:5432/tasknest"},
		Log:           LogConfig{Format: "json"},
		Observability: ObservabilityConfig{Addr: "127.0.0.1:9100"},
	}
}

// Load builds the effective configuration. Sources are merged in increasing
// priority: built-in defaults, then the YAML file at path (if non-empty),
// then any flags changed on flags (if non-nil). The JWT secret additionally
// falls back to the TASKNEST_JWT_SECRET environment variable when unset.
func Load(path string, flags *flag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_FILE_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = os.Getenv(jwtSecretEnv)
	}

	return cfg, nil
}
