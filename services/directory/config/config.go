// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the HR directory configuration.
//
// # Sources
//
// Values are resolved in this order (later wins):
//
//  1. DefaultConfig()
//  2. The YAML file passed to Load (optional)
//  3. HRDIR_* environment variables, e.g. HRDIR_SERVER_PORT=9090 or
//     HRDIR_FIXTURE_PATH=/srv/mock-data.json
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "HRDIR"

// ErrInvalidConfig wraps every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Fixture   FixtureConfig   `mapstructure:"fixture" yaml:"fixture"`
	Adapters  AdaptersConfig  `mapstructure:"adapters" yaml:"adapters"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	// Port is the listen port.
	Port int `mapstructure:"port" yaml:"port"`

	// GinMode is "debug", "release" or "test".
	GinMode string `mapstructure:"gin_mode" yaml:"gin_mode"`

	// RateLimitRPS is the per-client request rate. 0 disables limiting.
	RateLimitRPS float64 `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps"`

	// RateLimitBurst is the token bucket size.
	RateLimitBurst int `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// FixtureConfig locates the mock fixture.
type FixtureConfig struct {
	// Path is the canonical fixture file.
	Path string `mapstructure:"path" yaml:"path"`

	// LegacyPath is read only when Path does not exist.
	LegacyPath string `mapstructure:"legacy_path" yaml:"legacy_path"`

	// Watch logs fixture edits and whether they still parse.
	Watch bool `mapstructure:"watch" yaml:"watch"`

	// WatchDebounce coalesces bursts of file events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`
}

// AdaptersConfig controls the simulated enrichment providers.
type AdaptersConfig struct {
	// DelayScale multiplies every provider latency. 0 disables delays.
	DelayScale float64 `mapstructure:"delay_scale" yaml:"delay_scale"`
}

// TelemetryConfig controls metrics and tracing.
type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// Exporter is "none", "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// OTLPEndpoint is the collector gRPC address for Exporter "otlp".
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// Metrics exposes GET /metrics.
	Metrics bool `mapstructure:"metrics" yaml:"metrics"`
}

// AuthConfig selects the extension implementations.
type AuthConfig struct {
	// Provider is "mock" (mock-jwt-token-* bearer tokens) or "none".
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Audit is "log" (write audit events to the service log) or "none".
	Audit string `mapstructure:"audit" yaml:"audit"`
}

// LoggingConfig controls pkg/logging.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
	Dir   string `mapstructure:"dir" yaml:"dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            3001,
			GinMode:         "release",
			RateLimitRPS:    0,
			RateLimitBurst:  20,
			ShutdownTimeout: 10 * time.Second,
		},
		Fixture: FixtureConfig{
			Path:          filepath.Join("data", "mock-data.json"),
			LegacyPath:    filepath.Join("src", "infrastructure", "database", "mocks", "sample-data.json"),
			Watch:         false,
			WatchDebounce: 250 * time.Millisecond,
		},
		Adapters: AdaptersConfig{
			DelayScale: 1,
		},
		Telemetry: TelemetryConfig{
			ServiceName:  "hrdirectory",
			Exporter:     "none",
			OTLPEndpoint: "localhost:4317",
			Metrics:      true,
		},
		Auth: AuthConfig{
			Provider: "mock",
			Audit:    "log",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load resolves the configuration from defaults, path (if non-empty) and
// the environment.
//
// # Outputs
//
//   - Config: The validated configuration.
//   - error: Non-nil if path cannot be read or a value fails Validate.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.gin_mode", d.Server.GinMode)
	v.SetDefault("server.rate_limit_rps", d.Server.RateLimitRPS)
	v.SetDefault("server.rate_limit_burst", d.Server.RateLimitBurst)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("fixture.path", d.Fixture.Path)
	v.SetDefault("fixture.legacy_path", d.Fixture.LegacyPath)
	v.SetDefault("fixture.watch", d.Fixture.Watch)
	v.SetDefault("fixture.watch_debounce", d.Fixture.WatchDebounce)

	v.SetDefault("adapters.delay_scale", d.Adapters.DelayScale)

	v.SetDefault("telemetry.service_name", d.Telemetry.ServiceName)
	v.SetDefault("telemetry.exporter", d.Telemetry.Exporter)
	v.SetDefault("telemetry.otlp_endpoint", d.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.metrics", d.Telemetry.Metrics)

	v.SetDefault("auth.provider", d.Auth.Provider)
	v.SetDefault("auth.audit", d.Auth.Audit)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.json", d.Logging.JSON)
	v.SetDefault("logging.dir", d.Logging.Dir)
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	var problems []string
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("server.gin_mode %q must be debug, release or test", c.Server.GinMode))
	}
	if c.Server.RateLimitRPS < 0 {
		problems = append(problems, "server.rate_limit_rps must not be negative")
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
		problems = append(problems, "server.rate_limit_burst must be at least 1 when rate limiting is on")
	}
	if c.Fixture.Path == "" && c.Fixture.LegacyPath == "" {
		problems = append(problems, "fixture.path or fixture.legacy_path is required")
	}
	if c.Adapters.DelayScale < 0 {
		problems = append(problems, "adapters.delay_scale must not be negative")
	}
	switch c.Telemetry.Exporter {
	case "", "none", "stdout", "otlp":
	default:
		problems = append(problems, fmt.Sprintf("telemetry.exporter %q must be none, stdout or otlp", c.Telemetry.Exporter))
	}
	switch c.Auth.Provider {
	case "mock", "none":
	default:
		problems = append(problems, fmt.Sprintf("auth.provider %q must be mock or none", c.Auth.Provider))
	}
	switch c.Auth.Audit {
	case "log", "none":
	default:
		problems = append(problems, fmt.Sprintf("auth.audit %q must be log or none", c.Auth.Audit))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// FixturePaths returns the fixture paths in precedence order.
func (c Config) FixturePaths() []string {
	return []string{c.Fixture.Path, c.Fixture.LegacyPath}
}

// Write serialises cfg as YAML to path. It refuses to overwrite an existing
// file unless overwrite is set.
func Write(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	header := []byte("# HR directory configuration. Environment variables HRDIR_<SECTION>_<KEY> override these values.\n")
	return os.WriteFile(path, append(header, out...), 0640)
}
