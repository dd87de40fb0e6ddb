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
	"fmt"
	"strings"
	"time"
)

// EmployeeStatus is the employment state of an employee.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeePending  EmployeeStatus = "pending"
)

// relevanceFields is the number of profile fields counted by Enrich.
const relevanceFields = 7

// PersonalInfo holds identity fields.
type PersonalInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,hremail"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
}

// ProfessionalInfo holds role and skill fields.
type ProfessionalInfo struct {
	Position   string   `json:"position,omitempty"`
	Experience int      `json:"experience,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

// Enrichment is the derived profile summary produced by Enrich.
type Enrichment struct {
	Sources          []string  `json:"sources"`
	RelevanceScore   float64   `json:"relevanceScore"`
	ValueProposition string    `json:"valueProposition"`
	EnrichedAt       time.Time `json:"enrichedAt"`
}

// Employee is a person employed by a company in the directory.
type Employee struct {
	ID               string           `json:"id" validate:"required"`
	CompanyID        string           `json:"companyId,omitempty"`
	Department       string           `json:"department,omitempty"`
	Status           EmployeeStatus   `json:"status" validate:"oneof=active inactive pending"`
	PersonalInfo     PersonalInfo     `json:"personalInfo"`
	ProfessionalInfo ProfessionalInfo `json:"professionalInfo"`
	Enrichment       *Enrichment      `json:"enrichment,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// NewEmployee validates e and fills in status and timestamps.
func NewEmployee(e Employee) (*Employee, error) {
	e.PersonalInfo.Email = strings.ToLower(strings.TrimSpace(e.PersonalInfo.Email))
	if e.Status == "" {
		e.Status = EmployeeActive
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}
	e.UpdatedAt = e.CreatedAt
	if err := validateEntity("employee", e); err != nil {
		return nil, err
	}
	return &e, nil
}

// FullName joins first and last name.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.PersonalInfo.FirstName + " " + e.PersonalInfo.LastName)
}

// RelevanceScore is the fraction of the seven profile fields that are filled.
func (e *Employee) RelevanceScore() float64 {
	filled := 0
	for _, ok := range []bool{
		e.PersonalInfo.FirstName != "",
		e.PersonalInfo.LastName != "",
		e.PersonalInfo.Email != "",
		e.ProfessionalInfo.Position != "",
		e.Department != "",
		len(e.ProfessionalInfo.Skills) > 0,
		e.ProfessionalInfo.Experience > 0,
	} {
		if ok {
			filled++
		}
	}
	return float64(filled) / relevanceFields
}

// ValueProposition renders the one-line pitch used on enriched profiles.
func (e *Employee) ValueProposition() string {
	position := e.ProfessionalInfo.Position
	if position == "" {
		position = "Professional"
	}
	skills := "a range of areas"
	if n := len(e.ProfessionalInfo.Skills); n > 0 {
		if n > 3 {
			n = 3
		}
		skills = strings.Join(e.ProfessionalInfo.Skills[:n], ", ")
	}
	if e.ProfessionalInfo.Experience > 0 {
		return fmt.Sprintf("%s with %d years of experience, skilled in %s",
			position, e.ProfessionalInfo.Experience, skills)
	}
	return fmt.Sprintf("%s skilled in %s", position, skills)
}

// Enrich records an enrichment pass from the given sources and returns it.
func (e *Employee) Enrich(sources []string) Enrichment {
	t := now()
	enr := Enrichment{
		Sources:          append([]string(nil), sources...),
		RelevanceScore:   e.RelevanceScore(),
		ValueProposition: e.ValueProposition(),
		EnrichedAt:       t,
	}
	e.Enrichment = &enr
	e.UpdatedAt = t
	return enr
}

// AddSkills appends skills not already present (case-insensitive) and
// returns the ones that were added.
func (e *Employee) AddSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(e.ProfessionalInfo.Skills))
	for _, s := range e.ProfessionalInfo.Skills {
		seen[strings.ToLower(s)] = struct{}{}
	}
	var added []string
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		added = append(added, s)
	}
	if len(added) > 0 {
		e.ProfessionalInfo.Skills = append(e.ProfessionalInfo.Skills, added...)
		e.UpdatedAt = now()
	}
	return added
}
