// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command hrdirectory runs and administers the HR directory service.
//
// # Usage
//
//	# Write a starter config and fixture
//	hrdirectory config init
//	hrdirectory fixture init
//
//	# Start the server
//	hrdirectory serve --config hrdirectory.yaml
//
//	# Inspect mock data
//	hrdirectory fixture check
//	hrdirectory fixture show companies
//
// # Environment Variables
//
// Every config key can be overridden with HRDIR_<SECTION>_<KEY>, e.g.
// HRDIR_SERVER_PORT=8080 or HRDIR_FIXTURE_PATH=/srv/mock-data.json.
package main

import (
	"log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
