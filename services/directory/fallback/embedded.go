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
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFixture holds the starter mock fixture baked into the binary.
//
// The Loader never reads it directly. It is only written to disk by
// WriteDefaultFixture (the `hrdirectory fixture init` command), so a
// missing fixture file still degrades to the unavailable sentinel.
//
//go:embed default_fixture.json
var DefaultFixture []byte

// ErrFixtureExists is returned by WriteDefaultFixture when path exists and
// overwrite was not requested.
var ErrFixtureExists = errors.New("fixture already exists")

// WriteDefaultFixture writes DefaultFixture to path, creating parent
// directories.
func WriteDefaultFixture(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrFixtureExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create fixture directory: %w", err)
	}
	if err := os.WriteFile(path, DefaultFixture, 0640); err != nil {
		return fmt.Errorf("failed to write fixture: %w", err)
	}
	return nil
}
