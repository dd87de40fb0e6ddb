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

// FixtureDump handles GET /api/test: the resolved fixture path and its raw
// "companies" key.
func FixtureDump(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, doc, err := d.Fixture.Inspect(c.Request.Context())
		if err != nil {
			d.Logger.Error("Fixture inspection failed", "path", path, "error", err)
			c.JSON(http.StatusInternalServerError, datatypes.Response{
				Success: false,
				Message: fallback.MockUnavailableMessage,
				Data:    datatypes.DebugFixture{Path: path},
				Error:   err.Error(),
			})
			return
		}
		var companies any
		if m, ok := doc.(map[string]any); ok {
			companies = m["companies"]
		}
		c.JSON(http.StatusOK, datatypes.OK(datatypes.DebugFixture{Path: path, Companies: companies}, true))
	}
}

// Health handles GET /health. It always answers 200; "fixture" reports
// whether mock data is currently readable.
func Health(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		fixture := "ok"
		if _, _, err := d.Fixture.Inspect(c.Request.Context()); err != nil {
			fixture = "unavailable"
		}
		c.JSON(http.StatusOK, datatypes.HealthResponse{
			Status:  "ok",
			Service: d.ServiceName,
			Version: d.Version,
			Fixture: fixture,
		})
	}
}
