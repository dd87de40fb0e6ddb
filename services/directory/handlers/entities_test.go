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
	"testing"

	"github.com/AleutianAI/AleutianHR/services/directory/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeFromRecord_WrongTypesAreAbsent(t *testing.T) {
	record := map[string]any{
		"id":         "emp_1",
		"createdAt":  "2024-01-15",
		"department": 12.0,
		"status":     " active ",
		"personalInfo": map[string]any{
			"firstName": "Ada",
			"lastName":  nil,
			"email":     "ada@northwind.io",
		},
		"professionalInfo": map[string]any{
			"position":   "Dev",
			"experience": "5 years",
			"skills":     []any{"Go", 7.0, "", "SQL"},
		},
	}

	emp := employeeFromRecord(record)

	assert.Equal(t, "emp_1", emp.ID)
	assert.Equal(t, "", emp.Department)
	assert.Equal(t, domain.EmployeeStatus("active"), emp.Status)
	assert.Equal(t, "Ada", emp.FullName())
	assert.Equal(t, 0, emp.ProfessionalInfo.Experience)
	assert.Equal(t, []string{"Go", "SQL"}, emp.ProfessionalInfo.Skills)
	assert.True(t, emp.CreatedAt.IsZero())
}

func TestWholeNumber(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want int
	}{
		{"integer", 7.0, 7},
		{"fraction truncated", 2.9, 2},
		{"negative", -1.0, 0},
		{"string", "5", 0},
		{"too large", 1e12, 0},
		{"missing", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := map[string]any{"n": tt.v}
			assert.Equal(t, tt.want, wholeNumber(m, "n"))
		})
	}
}

func TestLookup_StopsAtNonObject(t *testing.T) {
	m := map[string]any{"a": map[string]any{"b": "x"}, "s": "leaf"}

	v, ok := lookup(m, "a", "b")
	require.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = lookup(m, "s", "b")
	assert.False(t, ok)
	_, ok = lookup(m, "missing")
	assert.False(t, ok)
}

func TestBuildTrainingRequest_Defaults(t *testing.T) {
	defaults, err := buildTrainingRequest(map[string]any{
		"title": "Go", "description": "Concurrency", "type": "course", "priority": "high",
	}, "tr_1", fixedNow)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "pending", "priority": "high"}, defaults)

	_, err = buildTrainingRequest(map[string]any{"title": "Go"}, "tr_1", fixedNow)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Required())
}
