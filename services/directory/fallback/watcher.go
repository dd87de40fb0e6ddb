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
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FixtureEvent is reported after the fixture file changes on disk.
type FixtureEvent struct {
	Path  string
	Valid bool
	Err   error
}

// Watcher logs fixture edits and whether the edited file still parses.
//
// It caches nothing; the Loader keeps reading the file on every request.
// The parent directory is watched so editors that replace the file by
// rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	onChange func(FixtureEvent)

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a Watcher for path. onChange may be nil.
func NewWatcher(path string, debounce time.Duration, logger *slog.Logger, onChange func(FixtureEvent)) *Watcher {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fixture watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch fixture directory %s: %w", dir, err)
	}
	w.logger.Info("Watching mock fixture", "path", w.path)

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Fixture watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.check)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) check() {
	ev := FixtureEvent{Path: w.path}
	if err := ValidateFixture(w.path); err != nil {
		ev.Err = err
		w.logger.Warn("Mock fixture changed and is no longer valid; requests will get the unavailable sentinel",
			"path", w.path, "error", err)
	} else {
		ev.Valid = true
		w.logger.Info("Mock fixture changed", "path", w.path)
	}
	if w.onChange != nil {
		w.onChange(ev)
	}
}
