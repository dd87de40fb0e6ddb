// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"net/http"

	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/AleutianAI/AleutianHR/services/directory/handlers"
	"github.com/AleutianAI/AleutianHR/services/directory/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every directory route on router. metrics, when
// non-nil, is served at GET /metrics.
func SetupRoutes(router *gin.Engine, deps *handlers.Deps, metrics http.Handler) {
	handlers.RegisterValidators()

	router.GET("/health", handlers.Health(deps))
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	api := router.Group("/api")
	{
		api.GET("/test", handlers.FixtureDump(deps))

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login(deps))
			auth.POST("/register", handlers.Register(deps))
			auth.POST("/logout", handlers.Logout(deps))
			auth.GET("/me", middleware.AuthMiddleware(deps.Auth), handlers.Me(deps))
			auth.POST("/refresh", handlers.Refresh(deps))
		}

		companies := api.Group("/companies")
		{
			companies.GET("", handlers.ListCompanies(deps))
			companies.GET("/:id", handlers.GetCompany(deps))
			companies.POST("", handlers.CreateCompany(deps))
			companies.PUT("/:id", handlers.UpdateCompany(deps))
			companies.POST("/:id/verify", handlers.VerifyCompany(deps))
			companies.DELETE("/:id", handlers.DeleteCompany(deps))
		}

		employees := api.Group("/employees")
		{
			employees.GET("", handlers.ListEmployees(deps))
			employees.GET("/:id", handlers.GetEmployee(deps))
			employees.POST("", handlers.CreateEmployee(deps))
			employees.PUT("/:id", handlers.UpdateEmployee(deps))
			employees.POST("/:id/enrich", handlers.EnrichEmployee(deps))
			employees.POST("/:id/skills", handlers.AddEmployeeSkills(deps))
			employees.DELETE("/:id", handlers.DeleteEmployee(deps))
		}

		hr := api.Group("/hr")
		{
			hr.GET("/dashboard", handlers.HRDashboard(deps))
			hr.GET("/employees", handlers.HREmployees(deps))
			hr.GET("/training-requests", handlers.HRTrainingRequests(deps))
			hr.GET("/analytics", handlers.HRAnalytics(deps))
		}

		instructors := api.Group("/instructors")
		{
			instructors.GET("", handlers.ListInstructors(deps))
			instructors.GET("/:id", handlers.GetInstructor(deps))
			instructors.POST("", handlers.CreateInstructor(deps))
			instructors.PUT("/:id", handlers.UpdateInstructor(deps))
		}

		training := api.Group("/training/requests")
		{
			training.GET("", handlers.ListTrainingRequests(deps))
			training.GET("/:id", handlers.GetTrainingRequest(deps))
			training.POST("", handlers.CreateTrainingRequest(deps))
			training.PUT("/:id", handlers.UpdateTrainingRequest(deps))
			training.POST("/:id/approve", handlers.ApproveTrainingRequest(deps))
			training.POST("/:id/reject", handlers.RejectTrainingRequest(deps))
			training.POST("/:id/schedule", handlers.ScheduleTrainingRequest(deps))
			training.POST("/:id/complete", handlers.CompleteTrainingRequest(deps))
			training.POST("/:id/cancel", handlers.CancelTrainingRequest(deps))
			training.DELETE("/:id", handlers.DeleteTrainingRequest(deps))
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, datatypes.Fail("Route not found", nil))
	})
}
