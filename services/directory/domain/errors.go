// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntity is wrapped by every constructor validation failure.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidTransition is returned when a state change is not allowed
	// from the entity's current status.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEntity
}

// Required reports whether the field was missing rather than malformed.
func (e *ValidationError) Required() bool {
	return e.Reason == reasonRequired
}

// TransitionError records the rejected transition.
type TransitionError struct {
	Entity string
	From   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from status %q", e.Entity, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
