// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package domain defines the validated HR entities: Company, Employee and
// TrainingRequest.
//
// Entities are in-memory value objects. Constructors reject invalid input
// with a *ValidationError (wrapping ErrInvalidEntity) and the transition
// methods return a *TransitionError (wrapping ErrInvalidTransition) when the
// current status does not allow the change. Nothing here is persisted; the
// HTTP layer uses Employee.Enrich to score enriched profiles and the status
// constants to shape action responses.
package domain
