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
	"github.com/AleutianAI/AleutianHR/services/directory/fallback"
	"github.com/gin-gonic/gin"
)

// The HR views are synthetic aggregates. They do not read the fixture and
// are not derived from the employee or training collections.

func HRDashboard(d *Deps) gin.HandlerFunc {
	return hrView(d, "hrDashboard", "/hr/dashboard", func() any { return datatypes.SampleHRDashboard() })
}

func HREmployees(d *Deps) gin.HandlerFunc {
	return hrView(d, "hrEmployees", "/hr/employees", func() any { return datatypes.SampleHREmployees() })
}

func HRTrainingRequests(d *Deps) gin.HandlerFunc {
	return hrView(d, "hrTrainingRequests", "/hr/training-requests", func() any { return datatypes.SampleHRTrainingRequests() })
}

func HRAnalytics(d *Deps) gin.HandlerFunc {
	return hrView(d, "hrAnalytics", "/hr/analytics", func() any { return datatypes.SampleHRAnalytics() })
}

func hrView(d *Deps, service, endpoint string, sample func() any) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := d.Executor.Execute(c.Request.Context(), fallback.Call{
			Service:  service,
			Endpoint: endpoint,
			Real:     d.realCall("HR", endpoint),
			Static:   sample(),
		})
		c.JSON(http.StatusOK, datatypes.OK(out.Data, out.UsedMock()))
	}
}
