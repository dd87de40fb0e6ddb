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
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	domainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]?(\.[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]?)*\.[a-zA-Z]{2,}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// entityValidate is the validator instance for entity structs.
// Initialized in init() with the hrdomain and hremail tags.
var entityValidate *validator.Validate

const reasonRequired = "is required"

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

func init() {
	entityValidate = validator.New()
	if err := RegisterValidators(entityValidate); err != nil {
		panic(err)
	}
}

// RegisterValidators adds the custom "hrdomain" and "hremail" tags to v.
//
// Gin's binding engine can be passed here so request structs share the
// same format rules as the entities.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("hrdomain", func(fl validator.FieldLevel) bool {
		return IsValidDomain(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register hrdomain: %w", err)
	}
	if err := v.RegisterValidation("hremail", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register hremail: %w", err)
	}
	return nil
}

// IsValidDomain reports whether s looks like a company web domain.
func IsValidDomain(s string) bool {
	return domainPattern.MatchString(s)
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validateEntity runs struct validation and converts one failure into a
// *ValidationError. A missing required field is reported ahead of any
// format failure.
func validateEntity(entity string, v any) error {
	err := entityValidate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		for _, candidate := range verrs {
			if candidate.Tag() == "required" {
				fe = candidate
				break
			}
		}
		return &ValidationError{
			Entity: entity,
			Field:  jsonFieldPath(fe.Namespace()),
			Reason: reasonFor(fe),
		}
	}
	return &ValidationError{Entity: entity, Field: "struct", Reason: err.Error()}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return reasonRequired
	case "hrdomain":
		return "must be a valid domain"
	case "hremail", "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte", "lte":
		return "must be between 0 and 1"
	default:
		return "failed " + fe.Tag()
	}
}

// jsonFieldPath turns "Company.HRContact.Email" into "hrContact.email".
func jsonFieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = lowerFirst(p)
	}
	return strings.Join(parts, ".")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	if strings.HasPrefix(s, "HR") {
		return "hr" + s[2:]
	}
	if s == "ID" {
		return "id"
	}
	return strings.ToLower(s[:1]) + s[1:]
}
