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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture writes content to a temp mock-data.json and returns its path.
func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mock-data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// countingRecorder records fixture errors by reason.
type countingRecorder struct {
	fallbacks map[string]int
	fixture   map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{fallbacks: map[string]int{}, fixture: map[string]int{}}
}

func (r *countingRecorder) ObserveFallback(service, source string) {
	r.fallbacks[service+"/"+source]++
}

func (r *countingRecorder) ObserveFixtureError(reason string) {
	r.fixture[reason]++
}

// =============================================================================
// Load
// =============================================================================

func TestLoader_ReturnsServiceEntry(t *testing.T) {
	path := writeFixture(t, `{"companies":[{"id":"comp_001"}],"employees":[]}`)
	l := NewLoader([]string{path}, Options{})

	got := l.Load(context.Background(), "companies", "/companies")

	list, ok := got.([]any)
	require.True(t, ok, "expected array, got %T", got)
	require.Len(t, list, 1)
	assert.Equal(t, "comp_001", list[0].(map[string]any)["id"])
}

func TestLoader_EmptyArrayIsTruthy(t *testing.T) {
	path := writeFixture(t, `{"employees":[]}`)
	l := NewLoader([]string{path}, Options{})

	got := l.Load(context.Background(), "employees", "/employees")

	assert.Equal(t, []any{}, got)
}

func TestLoader_UnknownServiceReturnsWholeDocument(t *testing.T) {
	path := writeFixture(t, `{"companies":[],"instructors":[{"id":"inst_001"}]}`)
	l := NewLoader([]string{path}, Options{})

	got := l.Load(context.Background(), "nonexistent-service", "/x")

	doc, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, doc, "companies")
	assert.Contains(t, doc, "instructors")
}

func TestLoader_FalsyEntryReturnsWholeDocument(t *testing.T) {
	path := writeFixture(t, `{"hrUsers":null,"companies":[]}`)
	l := NewLoader([]string{path}, Options{})

	got := l.Load(context.Background(), "hrUsers", "/hr")

	doc, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, doc, "companies")
}

func TestLoader_MissingFileReturnsSentinel(t *testing.T) {
	rec := newCountingRecorder()
	l := NewLoader([]string{filepath.Join(t.TempDir(), "absent.json")}, Options{Recorder: rec})

	got := l.Load(context.Background(), "companies", "/companies")

	assert.Equal(t, Unavailable(), got)
	assert.True(t, IsUnavailable(got))
	assert.Equal(t, 1, rec.fixture["read"])
}

func TestLoader_InvalidJSONReturnsSentinel(t *testing.T) {
	rec := newCountingRecorder()
	path := writeFixture(t, `{"companies": [`)
	l := NewLoader([]string{path}, Options{Recorder: rec})

	got := l.Load(context.Background(), "companies", "/companies")

	assert.True(t, IsUnavailable(got))
	assert.Equal(t, 1, rec.fixture["parse"])
}

func TestLoader_NoPathsReturnsSentinel(t *testing.T) {
	l := NewLoader(nil, Options{})
	assert.True(t, IsUnavailable(l.Load(context.Background(), "companies", "")))
}

func TestLoader_ReadsFreshOnEveryCall(t *testing.T) {
	path := writeFixture(t, `{"companies":[{"id":"a"}]}`)
	l := NewLoader([]string{path}, Options{})

	first := l.Load(context.Background(), "companies", "")
	require.NoError(t, os.WriteFile(path, []byte(`{"companies":[{"id":"a"},{"id":"b"}]}`), 0o644))
	second := l.Load(context.Background(), "companies", "")

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

// =============================================================================
// Path precedence
// =============================================================================

func TestLoader_PrefersCanonicalPath(t *testing.T) {
	canonical := writeFixture(t, `{"companies":[{"id":"canonical"}]}`)
	legacy := writeFixture(t, `{"companies":[{"id":"legacy"}]}`)
	l := NewLoader([]string{canonical, legacy}, Options{})

	assert.Equal(t, canonical, l.ResolvePath())
}

func TestLoader_FallsBackToLegacyPath(t *testing.T) {
	canonical := filepath.Join(t.TempDir(), "missing.json")
	legacy := writeFixture(t, `{"companies":[{"id":"legacy"}]}`)
	l := NewLoader([]string{canonical, "", legacy}, Options{})

	assert.Equal(t, legacy, l.ResolvePath())
	got := l.Load(context.Background(), "companies", "").([]any)
	assert.Equal(t, "legacy", got[0].(map[string]any)["id"])
}

func TestLoader_ReportsCanonicalWhenNoneExist(t *testing.T) {
	canonical := filepath.Join(t.TempDir(), "a.json")
	l := NewLoader([]string{canonical, filepath.Join(t.TempDir(), "b.json")}, Options{})
	assert.Equal(t, canonical, l.ResolvePath())
}

func TestLoader_Inspect(t *testing.T) {
	path := writeFixture(t, `{"companies":[]}`)
	l := NewLoader([]string{path}, Options{})

	gotPath, doc, err := l.Inspect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.Contains(t, doc, "companies")
}

// =============================================================================
// Embedded fixture
// =============================================================================

func TestDefaultFixture_IsValidAndHasAllServices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "mock-data.json")
	require.NoError(t, WriteDefaultFixture(path, false))
	require.NoError(t, ValidateFixture(path))

	_, doc, err := NewLoader([]string{path}, Options{}).Inspect(context.Background())
	require.NoError(t, err)
	for _, key := range []string{"companies", "employees", "trainingRequests", "instructors", "hrUsers"} {
		assert.Contains(t, doc, key)
	}
}

func TestWriteDefaultFixture_RefusesOverwrite(t *testing.T) {
	path := writeFixture(t, `{}`)
	assert.ErrorIs(t, WriteDefaultFixture(path, false), ErrFixtureExists)
	assert.NoError(t, WriteDefaultFixture(path, true))
}

func TestValidateFixture_RejectsArray(t *testing.T) {
	path := writeFixture(t, `[1,2,3]`)
	assert.Error(t, ValidateFixture(path))
}
