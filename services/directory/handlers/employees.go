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
	"net/http"

	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/AleutianAI/AleutianHR/services/directory/domain"
	"github.com/gin-gonic/gin"
)

const employeeRequiredMsg = "Employee email, first name, and last name are required"

// ListEmployees handles GET /api/employees?companyId=&status=&department=.
func ListEmployees(d *Deps) gin.HandlerFunc {
	return listHandler(d, employeeResource, "companyId", "status", "department")
}

// GetEmployee handles GET /api/employees/:id.
func GetEmployee(d *Deps) gin.HandlerFunc {
	return getHandler(d, employeeResource)
}

// CreateEmployee handles POST /api/employees. New employees start active.
func CreateEmployee(d *Deps) gin.HandlerFunc {
	return createHandler(d, employeeResource, buildEmployee, employeeRequiredMsg)
}

// UpdateEmployee handles PUT /api/employees/:id.
func UpdateEmployee(d *Deps) gin.HandlerFunc {
	return updateHandler(d, employeeResource)
}

// DeleteEmployee handles DELETE /api/employees/:id.
func DeleteEmployee(d *Deps) gin.HandlerFunc {
	return deleteHandler(d, employeeResource)
}

// EnrichEmployee handles POST /api/employees/:id/enrich.
//
// # Description
//
// Calls every requested enrichment adapter concurrently (default linkedin
// and github). When the employee exists in the fixture, the relevance score
// and value proposition are computed from its profile.
func EnrichEmployee(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req datatypes.EnrichRequest
		if _, ok := bindBody(c, &req, ""); !ok {
			return
		}

		res, err := d.Adapters.Enrich(c.Request.Context(), id, req.Sources)
		if err != nil {
			d.Logger.Warn("Enrichment aborted", "employee_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, datatypes.Fail("Employee enrichment failed", err))
			return
		}

		result := datatypes.EnrichResult{
			ID:          id,
			Sources:     res.Sources,
			Profiles:    res.Profiles,
			Unsupported: res.Unsupported,
			EnrichedAt:  timestamp(d.Clock()),
		}

		out := d.run(c, employeeResource, employeeResource.base+"/"+id+"/enrich", result)
		if emp, ok := d.fixtureEmployee(c, id); ok {
			enr := emp.Enrich(res.Sources)
			result.Name = emp.FullName()
			result.RelevanceScore = &enr.RelevanceScore
			result.ValueProposition = enr.ValueProposition
		} else {
			d.Logger.Debug("Employee not in fixture, enriching without profile summary", "employee_id", id)
		}

		d.audit(c, employeeResource, "enrich", id, out)
		c.JSON(http.StatusOK, datatypes.Response{
			Success:  true,
			Message:  "Employee enrichment completed",
			Data:     result,
			Fallback: out.UsedMock(),
		})
	}
}

// AddEmployeeSkills handles POST /api/employees/:id/skills.
//
// Skills are trimmed and de-duplicated case-insensitively within the
// request; skillsAdded lists what remains, in request order.
func AddEmployeeSkills(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req datatypes.SkillsRequest
		if _, ok := bindBody(c, &req, ""); !ok {
			return
		}
		items, ok := req.Skills.([]any)
		if !ok {
			c.JSON(http.StatusBadRequest, datatypes.Fail("Skills must be an array", nil))
			return
		}
		skills := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				c.JSON(http.StatusBadRequest, datatypes.Fail("Skills must be an array of strings", nil))
				return
			}
			skills = append(skills, s)
		}

		var emp domain.Employee
		added := emp.AddSkills(skills)
		if added == nil {
			added = []string{}
		}
		result := datatypes.SkillsResult{ID: id, SkillsAdded: added}

		out := d.run(c, employeeResource, employeeResource.base+"/"+id+"/skills", result)
		d.audit(c, employeeResource, "skills", id, out)
		c.JSON(http.StatusOK, datatypes.Response{
			Success:  true,
			Message:  "Skills added successfully",
			Data:     result,
			Fallback: out.UsedMock(),
		})
	}
}

// fixtureEmployee reads the employee record from mock data. Fields of an
// unexpected type are treated as absent so loose records still enrich.
func (d *Deps) fixtureEmployee(c *gin.Context, id string) (*domain.Employee, bool) {
	out := d.run(c, employeeResource, employeeResource.base+"/"+id, nil)
	record, ok := findByID(out.Data, id)
	if !ok {
		return nil, false
	}
	return employeeFromRecord(record), true
}
