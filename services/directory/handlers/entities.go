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
	"math"
	"strings"
	"time"

	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/AleutianAI/AleutianHR/services/directory/domain"
	"github.com/gin-gonic/gin/binding"
)

// buildFunc validates a create body and returns the fields filled in by
// the constructor (status, priority) for keys the body left out.
//
// Request bodies and fixture records are loose JSON. Builders read only the
// fields an entity needs and treat a value of the wrong type as absent.
type buildFunc func(body map[string]any, id string, at time.Time) (map[string]any, error)

func buildCompany(body map[string]any, id string, at time.Time) (map[string]any, error) {
	company, err := domain.NewCompany(domain.Company{
		ID:       id,
		Name:     str(body, "name"),
		Domain:   str(body, "domain"),
		Industry: str(body, "industry"),
		Size:     str(body, "size"),
		HRContact: domain.HRContact{
			Name:  str(body, "hrContact", "name"),
			Email: str(body, "hrContact", "email"),
			Phone: str(body, "hrContact", "phone"),
		},
		Status:    domain.CompanyStatus(str(body, "status")),
		CreatedAt: at,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"status": string(company.Status)}, nil
}

func buildEmployee(body map[string]any, id string, at time.Time) (map[string]any, error) {
	draft := employeeFromRecord(body)
	draft.ID = id
	draft.CreatedAt = at
	emp, err := domain.NewEmployee(*draft)
	if err != nil {
		return nil, err
	}
	return map[string]any{"status": string(emp.Status)}, nil
}

func buildTrainingRequest(body map[string]any, id string, at time.Time) (map[string]any, error) {
	req, err := domain.NewTrainingRequest(domain.TrainingRequest{
		ID:          id,
		CompanyID:   str(body, "companyId"),
		EmployeeID:  str(body, "employeeId"),
		Title:       str(body, "title"),
		Description: str(body, "description"),
		Type:        domain.TrainingType(str(body, "type")),
		Priority:    domain.Priority(str(body, "priority")),
		Status:      domain.TrainingStatus(str(body, "status")),
		CreatedAt:   at,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":   string(req.Status),
		"priority": string(req.Priority),
	}, nil
}

// buildInstructor has no domain entity; it checks the request struct with
// gin's validator, which shares the hremail rule.
func buildInstructor(body map[string]any, _ string, _ time.Time) (map[string]any, error) {
	req := datatypes.InstructorCreateRequest{
		Name:  str(body, "name"),
		Email: str(body, "email"),
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return nil, err
	}
	return map[string]any{"status": "active"}, nil
}

// employeeFromRecord reads the profile fields of a loose employee record.
// Timestamps and unknown keys are ignored.
func employeeFromRecord(record map[string]any) *domain.Employee {
	return &domain.Employee{
		ID:         str(record, "id"),
		CompanyID:  str(record, "companyId"),
		Department: str(record, "department"),
		Status:     domain.EmployeeStatus(str(record, "status")),
		PersonalInfo: domain.PersonalInfo{
			FirstName: str(record, "personalInfo", "firstName"),
			LastName:  str(record, "personalInfo", "lastName"),
			Email:     str(record, "personalInfo", "email"),
			Phone:     str(record, "personalInfo", "phone"),
			Location:  str(record, "personalInfo", "location"),
		},
		ProfessionalInfo: domain.ProfessionalInfo{
			Position:   str(record, "professionalInfo", "position"),
			Experience: wholeNumber(record, "professionalInfo", "experience"),
			Skills:     strs(record, "professionalInfo", "skills"),
		},
	}
}

// lookup walks nested objects along path.
func lookup(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func str(m map[string]any, path ...string) string {
	v, _ := lookup(m, path...)
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// wholeNumber returns a non-negative JSON number truncated to int, or 0.
func wholeNumber(m map[string]any, path ...string) int {
	v, _ := lookup(m, path...)
	f, ok := v.(float64)
	if !ok || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// strs returns the string items of an array, skipping other items.
func strs(m map[string]any, path ...string) []string {
	v, _ := lookup(m, path...)
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
