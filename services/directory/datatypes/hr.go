// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

// The /api/hr routes return synthetic aggregates. They are independent of
// the fixture's employee records and are handed to the executor as Static
// mock data.

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type Activity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type HRDashboard struct {
	TotalEmployees          int               `json:"totalEmployees"`
	ActiveEmployees         int               `json:"activeEmployees"`
	PendingTrainingRequests int               `json:"pendingTrainingRequests"`
	CompletedTrainings      int               `json:"completedTrainings"`
	AverageSkillScore       float64           `json:"averageSkillScore"`
	Departments             []DepartmentCount `json:"departments"`
	RecentActivity          []Activity        `json:"recentActivity"`
}

type HREmployeeSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	SkillScore     float64 `json:"skillScore"`
	TrainingsTaken int     `json:"trainingsTaken"`
	Status         string  `json:"status"`
}

type HREmployees struct {
	Employees []HREmployeeSummary `json:"employees"`
	Total     int                 `json:"total"`
}

type HRTrainingRequestSummary struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employeeName"`
	Title        string `json:"title"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	RequestedAt  string `json:"requestedAt"`
}

type HRTrainingRequests struct {
	Requests []HRTrainingRequestSummary `json:"requests"`
	Pending  int                        `json:"pending"`
	Approved int                        `json:"approved"`
	Rejected int                        `json:"rejected"`
}

type SkillGap struct {
	Skill    string  `json:"skill"`
	Coverage float64 `json:"coverage"`
}

type MonthlyTrend struct {
	Month       string `json:"month"`
	Completions int    `json:"completions"`
	Requests    int    `json:"requests"`
}

type HRAnalytics struct {
	TrainingCompletionRate float64        `json:"trainingCompletionRate"`
	AverageTimeToComplete  string         `json:"averageTimeToComplete"`
	EmployeeSatisfaction   float64        `json:"employeeSatisfaction"`
	TrainingROI            float64        `json:"trainingROI"`
	SkillGaps              []SkillGap     `json:"skillGaps"`
	MonthlyTrends          []MonthlyTrend `json:"monthlyTrends"`
}

func SampleHRDashboard() HRDashboard {
	return HRDashboard{
		TotalEmployees:          156,
		ActiveEmployees:         142,
		PendingTrainingRequests: 23,
		CompletedTrainings:      89,
		AverageSkillScore:       0.78,
		Departments: []DepartmentCount{
			{Department: "Engineering", Count: 58},
			{Department: "Operations", Count: 34},
			{Department: "Sales", Count: 29},
			{Department: "Research", Count: 21},
			{Department: "People", Count: 14},
		},
		RecentActivity: []Activity{
			{Type: "training_request", Description: "New training request: Advanced Kubernetes Operations", Timestamp: "2025-02-03T11:00:00.000Z"},
			{Type: "training_completed", Description: "Streaming Data Pipelines completed", Timestamp: "2025-01-30T16:20:00.000Z"},
			{Type: "employee_joined", Description: "Amara Nwosu joined Research", Timestamp: "2025-01-20T09:00:00.000Z"},
		},
	}
}

func SampleHREmployees() HREmployees {
	list := []HREmployeeSummary{
		{ID: "emp_001", Name: "Sam Okafor", Department: "Engineering", Position: "Senior Backend Engineer", SkillScore: 0.86, TrainingsTaken: 6, Status: "active"},
		{ID: "emp_002", Name: "Hana Kobayashi", Department: "Operations", Position: "Operations Lead", SkillScore: 0.74, TrainingsTaken: 4, Status: "active"},
		{ID: "emp_004", Name: "Amara Nwosu", Department: "Research", Position: "ML Researcher", SkillScore: 0.81, TrainingsTaken: 3, Status: "active"},
	}
	return HREmployees{Employees: list, Total: len(list)}
}

func SampleHRTrainingRequests() HRTrainingRequests {
	return HRTrainingRequests{
		Requests: []HRTrainingRequestSummary{
			{ID: "tr_001", EmployeeName: "Sam Okafor", Title: "Advanced Kubernetes Operations", Priority: "high", Status: "pending", RequestedAt: "2025-02-03T11:00:00.000Z"},
			{ID: "tr_002", EmployeeName: "Hana Kobayashi", Title: "Lean Six Sigma Green Belt", Priority: "medium", Status: "approved", RequestedAt: "2025-02-10T11:00:00.000Z"},
			{ID: "tr_004", EmployeeName: "Amara Nwosu", Title: "Research Mentoring Program", Priority: "medium", Status: "pending", RequestedAt: "2025-02-21T11:00:00.000Z"},
		},
		Pending:  2,
		Approved: 1,
		Rejected: 0,
	}
}

func SampleHRAnalytics() HRAnalytics {
	return HRAnalytics{
		TrainingCompletionRate: 0.85,
		AverageTimeToComplete:  "14 days",
		EmployeeSatisfaction:   4.3,
		TrainingROI:            2.4,
		SkillGaps: []SkillGap{
			{Skill: "Kubernetes", Coverage: 0.35},
			{Skill: "System Design", Coverage: 0.42},
			{Skill: "Data Privacy", Coverage: 0.51},
		},
		MonthlyTrends: []MonthlyTrend{
			{Month: "2024-11", Completions: 12, Requests: 18},
			{Month: "2024-12", Completions: 9, Requests: 14},
			{Month: "2025-01", Completions: 15, Requests: 21},
		},
	}
}
