// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/AleutianAI/AleutianHR/services/directory/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-openapi/strfmt"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var registerOnce sync.Once

// RegisterValidators adds the hrdomain and hremail tags to gin's binding
// engine and makes validation errors report JSON field names. Safe to call
// more than once; SetupRoutes calls it. It panics if registration fails,
// since every create route depends on the tags.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := domain.RegisterValidators(v); err != nil {
			panic(err)
		}
		v.RegisterTagNameFunc(jsonFieldName)
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// bindBody decodes the JSON object body into target (when non-nil),
// validates target, and returns the body as a generic map so extra fields
// can be echoed back.
//
// On failure it writes a 400 and returns false. A validation failure on a
// required field answers requiredMsg; a malformed field answers "Invalid
// <field>"; an undecodable body answers "Invalid request body". An empty
// body decodes as {}.
func bindBody(c *gin.Context, target any, requiredMsg string) (map[string]any, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, datatypes.Fail("Invalid request body", err))
		return nil, false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		if err == nil {
			err = errors.New("request body must be a JSON object")
		}
		c.JSON(http.StatusBadRequest, datatypes.Fail("Invalid request body", err))
		return nil, false
	}

	if target == nil {
		return body, true
	}
	if err := json.Unmarshal(raw, target); err != nil {
		c.JSON(http.StatusBadRequest, datatypes.Fail("Invalid request body", err))
		return nil, false
	}
	if err := binding.Validator.ValidateStruct(target); err != nil {
		c.JSON(http.StatusBadRequest, datatypes.Fail(validationMessage(err, requiredMsg), err))
		return nil, false
	}
	return body, true
}

func validationMessage(err error, requiredMsg string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return orDefault(requiredMsg, "Invalid request body")
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" && requiredMsg != "" {
			return requiredMsg
		}
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "hremail":
		return "Invalid " + field + ": must be a valid email"
	case "hrdomain":
		return "Invalid " + field + ": must be a valid domain"
	case "oneof":
		return "Invalid " + field + ": must be one of " + fe.Param()
	case "gte", "lte":
		return "Invalid " + field + ": must be between 0 and 1"
	case "required":
		return field + " is required"
	default:
		return "Invalid " + field
	}
}

// createErrorMessage maps a builder error to the 400 message. Missing
// fields answer requiredMsg.
func createErrorMessage(err error, requiredMsg string) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		if verr.Required() {
			return requiredMsg
		}
		return "Invalid " + verr.Field + ": " + verr.Reason
	}
	return validationMessage(err, requiredMsg)
}

func timestamp(t time.Time) strfmt.DateTime {
	return strfmt.DateTime(t.UTC())
}
