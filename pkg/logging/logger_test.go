// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"", LevelInfo, false},
		{"INFO", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_TextOutputIncludesService(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf})

	l.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "service=hrdirectory")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Info("dropped")
	l.Debug("dropped")
	l.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{JSON: true, Service: "svc", Output: &buf})

	l.Slog().Error("boom", "code", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "boom", rec["msg"])
	assert.Equal(t, "svc", rec["service"])
	assert.Equal(t, float64(7), rec["code"])
}

func TestNew_QuietWithoutDirDiscards(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Quiet: true, Output: &buf})
	l.Error("nothing")
	assert.Empty(t, buf.String())
	assert.Empty(t, l.FilePath())
}

func TestNew_WritesToFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	l := New(Config{LogDir: dir, Output: &buf})

	l.With("request_id", "r1").Info("both")
	path := l.FilePath()
	require.NotEmpty(t, path)
	require.NoError(t, l.Close())

	assert.Contains(t, buf.String(), "request_id=r1")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(raw))
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "both", rec["msg"])
	assert.Equal(t, "r1", rec["request_id"])
}

func TestClose_Idempotent(t *testing.T) {
	l := New(Config{LogDir: t.TempDir(), Quiet: true})
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}

func TestNew_UnwritableDirFallsBack(t *testing.T) {
	blocker := t.TempDir() + "/file"
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	var buf bytes.Buffer

	l := New(Config{LogDir: blocker + "/logs", Output: &buf})

	assert.Empty(t, l.FilePath())
	assert.Contains(t, buf.String(), "File logging disabled")
}
