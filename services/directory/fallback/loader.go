// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package fallback

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
)

// MockUnavailableMessage is the error text of the loader sentinel.
const MockUnavailableMessage = "Mock data not available"

// Unavailable returns the sentinel the loader yields when the fixture cannot
// be read or parsed.
func Unavailable() map[string]any {
	return map[string]any{"error": MockUnavailableMessage}
}

// IsUnavailable reports whether v is the loader sentinel.
func IsUnavailable(v any) bool {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return false
	}
	msg, ok := m["error"].(string)
	return ok && msg == MockUnavailableMessage
}

// Loader reads the mock fixture from disk.
//
// # Description
//
// The fixture is a JSON object keyed by service name ("companies",
// "employees", "trainingRequests", "instructors", "hrUsers"). Every Load
// reads and parses the file again; nothing is cached, so edits to the
// fixture are visible on the next request.
//
// # Path Precedence
//
// Paths are tried in order and the first one that exists is read. When none
// exists the first configured path is reported in the logged error.
//
// # Thread Safety
//
// Safe for concurrent use. The Loader holds no mutable state.
type Loader struct {
	paths    []string
	logger   *slog.Logger
	recorder Recorder
}

// NewLoader creates a Loader over the given fixture paths (highest
// precedence first). Empty paths are ignored.
func NewLoader(paths []string, opts Options) *Loader {
	opts = opts.withDefaults()
	var clean []string
	for _, p := range paths {
		if p != "" {
			clean = append(clean, p)
		}
	}
	return &Loader{
		paths:    clean,
		logger:   opts.Logger,
		recorder: opts.Recorder,
	}
}

// Paths returns the configured fixture paths in precedence order.
func (l *Loader) Paths() []string {
	return append([]string(nil), l.paths...)
}

// ResolvePath returns the fixture path that Load would read.
func (l *Loader) ResolvePath() string {
	for _, p := range l.paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if len(l.paths) > 0 {
		return l.paths[0]
	}
	return ""
}

// Load returns the fixture entry for service.
//
// # Description
//
// If the document has a truthy value under service, that value is returned.
// Otherwise the whole parsed document is returned. Any read or parse failure
// is logged and converted to Unavailable(); Load never returns an error.
//
// # Inputs
//
//   - ctx: Unused beyond cancellation-free reads; present for interface symmetry.
//   - service: Top-level fixture key.
//   - endpoint: Only used in log output.
func (l *Loader) Load(_ context.Context, service, endpoint string) any {
	path, doc, err := l.read()
	if err != nil {
		l.logger.Error("Error loading mock data",
			"service", service,
			"endpoint", endpoint,
			"path", path,
			"error", err)
		return Unavailable()
	}
	if m, ok := doc.(map[string]any); ok {
		if v, ok := m[service]; ok && truthy(v) {
			return v
		}
	}
	return doc
}

// Inspect reads the fixture and returns the resolved path with the whole
// parsed document.
func (l *Loader) Inspect(_ context.Context) (string, any, error) {
	return l.read()
}

func (l *Loader) read() (string, any, error) {
	path := l.ResolvePath()
	if path == "" {
		l.recorder.ObserveFixtureError("read")
		return "", nil, fmt.Errorf("no fixture path configured")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		l.recorder.ObserveFixtureError("read")
		return path, nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		l.recorder.ObserveFixtureError("parse")
		return path, nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return path, doc, nil
}

// ValidateFixture checks that path holds a JSON object.
func ValidateFixture(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("fixture is not a JSON object: %w", err)
	}
	return nil
}

// truthy follows JavaScript truthiness for decoded JSON values.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
