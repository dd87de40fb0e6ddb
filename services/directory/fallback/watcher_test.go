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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsValidity(t *testing.T) {
	path := writeFixture(t, `{"companies":[]}`)
	events := make(chan FixtureEvent, 8)
	w := NewWatcher(path, 20*time.Millisecond, nil, func(ev FixtureEvent) { events <- ev })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"companies": [`), 0o644))

	select {
	case ev := <-events:
		assert.Equal(t, path, ev.Path)
		assert.False(t, ev.Valid)
		assert.Error(t, ev.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("no fixture event after invalid write")
	}

	require.NoError(t, os.WriteFile(path, []byte(`{"companies":[{"id":"x"}]}`), 0o644))
	select {
	case ev := <-events:
		assert.True(t, ev.Valid)
	case <-time.After(5 * time.Second):
		t.Fatal("no fixture event after valid write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher("/nonexistent/dir/mock-data.json", 0, nil, nil)
	err := w.Run(context.Background())
	assert.Error(t, err)
}
