// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "none", cfg.Telemetry.Exporter)
	assert.Equal(t, []string{
		filepath.Join("data", "mock-data.json"),
		filepath.Join("src", "infrastructure", "database", "mocks", "sample-data.json"),
	}, cfg.FixturePaths())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrdirectory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
  rate_limit_rps: 5
fixture:
  path: /srv/fixture.json
  watch: true
  watch_debounce: 1s
adapters:
  delay_scale: 0
`), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5.0, cfg.Server.RateLimitRPS)
	assert.Equal(t, "/srv/fixture.json", cfg.Fixture.Path)
	assert.True(t, cfg.Fixture.Watch)
	assert.Equal(t, time.Second, cfg.Fixture.WatchDebounce)
	assert.Equal(t, 0.0, cfg.Adapters.DelayScale)
	assert.Equal(t, "release", cfg.Server.GinMode)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrdirectory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644))
	t.Setenv("HRDIR_SERVER_PORT", "9191")
	t.Setenv("HRDIR_TELEMETRY_EXPORTER", "stdout")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "stdout", cfg.Telemetry.Exporter)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("HRDIR_AUTH_PROVIDER", "oauth")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"gin mode", func(c *Config) { c.Server.GinMode = "loud" }},
		{"negative rps", func(c *Config) { c.Server.RateLimitRPS = -1 }},
		{"burst", func(c *Config) { c.Server.RateLimitRPS = 1; c.Server.RateLimitBurst = 0 }},
		{"no fixture", func(c *Config) { c.Fixture.Path = ""; c.Fixture.LegacyPath = "" }},
		{"delay scale", func(c *Config) { c.Adapters.DelayScale = -0.5 }},
		{"exporter", func(c *Config) { c.Telemetry.Exporter = "zipkin" }},
		{"audit", func(c *Config) { c.Auth.Audit = "kafka" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "hrdirectory.yaml")
	want := DefaultConfig()
	want.Server.Port = 4000
	want.Fixture.WatchDebounce = 2 * time.Second

	require.NoError(t, Write(path, want, false))
	got, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrdirectory.yaml")
	require.NoError(t, Write(path, DefaultConfig(), false))
	assert.Error(t, Write(path, DefaultConfig(), false))
	assert.NoError(t, Write(path, DefaultConfig(), true))
}
