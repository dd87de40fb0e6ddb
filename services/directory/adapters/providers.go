// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package adapters

import "time"

// Source names accepted by Registry.Call and Registry.Enrich.
const (
	LinkedIn          = "linkedin"
	GitHub            = "github"
	Credly            = "credly"
	ORCID             = "orcid"
	YouTube           = "youtube"
	Crossref          = "crossref"
	Gemini            = "gemini"
	SendPulse         = "sendpulse"
	SendGrid          = "sendgrid"
	SkillsEngine      = "skills-engine"
	Marketplace       = "marketplace"
	Assessment        = "assessment"
	ContentStudio     = "content-studio"
	HRReporting       = "hr-reporting"
	DevLab            = "devlab"
	LearningAnalytics = "learning-analytics"
)

// DefaultEnrichSources is used when an enrich request names no sources.
var DefaultEnrichSources = []string{LinkedIn, GitHub}

// builtin is the provider table. Samples build a fresh object per call so
// callers may mutate what they receive.
var builtin = []Adapter{
	{
		Name:     LinkedIn,
		Provider: "LinkedIn",
		Delay:    1000 * time.Millisecond,
		Sample: func(req Request) map[string]any {
			return map[string]any{
				"profileId":   "li_" + req.EmployeeID,
				"headline":    "Senior Software Engineer | Cloud Architecture",
				"connections": 500,
				"positions": []any{
					map[string]any{"title": "Senior Software Engineer", "company": "TechCorp", "current": true},
					map[string]any{"title": "Software Engineer", "company": "StartupXYZ", "current": false},
				},
				"skills":          []any{"JavaScript", "React", "Node.js", "AWS"},
				"recommendations": 12,
			}
		},
	},
	{
		Name:     GitHub,
		Provider: "GitHub",
		Delay:    800 * time.Millisecond,
		Sample: func(req Request) map[string]any {
			return map[string]any{
				"login":         "dev-" + req.EmployeeID,
				"publicRepos":   24,
				"followers":     87,
				"contributions": 1243,
				"topLanguages":  []any{"TypeScript", "Go", "Python"},
				"pinnedRepos": []any{
					map[string]any{"name": "api-gateway", "stars": 142, "language": "Go"},
					map[string]any{"name": "ui-kit", "stars": 58, "language": "TypeScript"},
				},
			}
		},
	},
	{
		Name:     Credly,
		Provider: "Credly",
		Delay:    600 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"badges": []any{
					map[string]any{"name": "AWS Certified Solutions Architect", "issuer": "Amazon Web Services", "issuedAt": "2024-03-15"},
					map[string]any{"name": "Certified Kubernetes Administrator", "issuer": "CNCF", "issuedAt": "2023-11-02"},
				},
				"totalBadges": 2,
			}
		},
	},
	{
		Name:     ORCID,
		Provider: "ORCID",
		Delay:    700 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"orcidId": "0000-0002-1825-0097",
				"works": []any{
					map[string]any{"title": "Scalable Learning Pathways in Enterprise Training", "year": 2023, "type": "journal-article"},
				},
				"affiliations": []any{"University of Technology"},
			}
		},
	},
	{
		Name:     YouTube,
		Provider: "YouTube",
		Delay:    900 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"channelId":   "UC_training_001",
				"subscribers": 3200,
				"videos": []any{
					map[string]any{"title": "Intro to Distributed Systems", "views": 15400, "duration": "PT18M"},
					map[string]any{"title": "Testing in Practice", "views": 8900, "duration": "PT24M"},
				},
			}
		},
	},
	{
		Name:     Crossref,
		Provider: "Crossref",
		Delay:    650 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"status": "ok",
				"message": map[string]any{
					"totalResults": 1,
					"items": []any{
						map[string]any{"DOI": "10.1000/xyz123", "title": []any{"Continuous Learning at Work"}, "publisher": "ACM"},
					},
				},
			}
		},
	},
	{
		Name:     Gemini,
		Provider: "Gemini",
		Delay:    1200 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"model": "gemini-pro",
				"candidates": []any{
					map[string]any{
						"content":      "Recommended focus areas: cloud architecture, technical leadership, mentoring.",
						"finishReason": "STOP",
					},
				},
				"usage": map[string]any{"promptTokens": 120, "candidateTokens": 45},
			}
		},
	},
	{
		Name:     SendPulse,
		Provider: "SendPulse",
		Delay:    400 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{"result": true, "id": "sp_msg_48213", "status": "queued"}
		},
	},
	{
		Name:     SendGrid,
		Provider: "SendGrid",
		Delay:    300 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{"statusCode": 202, "messageId": "sg_msg_99172", "accepted": true}
		},
	},
	{
		Name:     SkillsEngine,
		Provider: "Skills Engine",
		Delay:    500 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"normalizedSkills": []any{
					map[string]any{"name": "JavaScript", "category": "Programming", "level": "advanced"},
					map[string]any{"name": "Leadership", "category": "Soft Skills", "level": "intermediate"},
				},
				"gaps": []any{"Kubernetes", "System Design"},
			}
		},
	},
	{
		Name:     Marketplace,
		Provider: "Marketplace",
		Delay:    750 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"courses": []any{
					map[string]any{"id": "mk_101", "title": "Advanced React Patterns", "price": 199, "rating": 4.7},
					map[string]any{"id": "mk_205", "title": "Leading Engineering Teams", "price": 349, "rating": 4.8},
				},
				"total": 2,
			}
		},
	},
	{
		Name:     Assessment,
		Provider: "Assessment",
		Delay:    850 * time.Millisecond,
		Sample: func(req Request) map[string]any {
			return map[string]any{
				"assessmentId": "as_" + req.EmployeeID,
				"score":        0.82,
				"passed":       true,
				"competencies": map[string]any{"technical": 0.88, "communication": 0.76, "problemSolving": 0.83},
			}
		},
	},
	{
		Name:     ContentStudio,
		Provider: "Content Studio",
		Delay:    1100 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"contentId": "cs_3391",
				"title":     "Onboarding Module: Engineering Practices",
				"status":    "draft",
				"sections":  []any{"Overview", "Tooling", "Code Review", "Quiz"},
			}
		},
	},
	{
		Name:     HRReporting,
		Provider: "HR Reporting",
		Delay:    950 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"reportId":    "hrr_2024_q1",
				"period":      "2024-Q1",
				"headcount":   156,
				"turnover":    0.04,
				"trainingHrs": 1240,
			}
		},
	},
	{
		Name:     DevLab,
		Provider: "DevLab",
		Delay:    1000 * time.Millisecond,
		Sample: func(req Request) map[string]any {
			return map[string]any{
				"labId":     "lab_" + req.EmployeeID,
				"exercises": 14,
				"completed": 11,
				"environments": []any{
					map[string]any{"name": "go-sandbox", "status": "ready"},
					map[string]any{"name": "k8s-playground", "status": "provisioning"},
				},
			}
		},
	},
	{
		Name:     LearningAnalytics,
		Provider: "Learning Analytics",
		Delay:    800 * time.Millisecond,
		Sample: func(Request) map[string]any {
			return map[string]any{
				"learnerEngagement": 0.78,
				"completionRate":    0.85,
				"averageScore":      0.81,
				"trend":             "improving",
				"recommendations":   []any{"Increase hands-on labs", "Add peer mentoring sessions"},
			}
		},
	},
}
