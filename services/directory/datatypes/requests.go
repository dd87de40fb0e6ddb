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

import "github.com/go-openapi/strfmt"

// Request bodies are bound with gin's validator. Only the fields that carry
// binding rules are declared; handlers echo the raw body back, so extra
// fields survive untouched. Company, employee and training request creates
// are validated by the domain constructors instead.
//
// hrdomain and hremail are registered on the gin engine by
// handlers.RegisterValidators.

// =============================================================================
// Auth
// =============================================================================

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,hremail"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// =============================================================================
// Companies
// =============================================================================

type CompanyVerifyRequest struct {
	VerifiedBy string `json:"verifiedBy"`
}

// =============================================================================
// Employees
// =============================================================================

type EnrichRequest struct {
	Sources []string `json:"sources"`
}

// SkillsRequest keeps Skills untyped so a non-array value can be reported
// with a specific message instead of a decode error.
type SkillsRequest struct {
	Skills any `json:"skills"`
}

// =============================================================================
// Instructors
// =============================================================================

type InstructorCreateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,hremail"`
}

// =============================================================================
// Training
// =============================================================================

type TrainingApproveRequest struct {
	ApprovedBy string `json:"approvedBy"`
}

type TrainingRejectRequest struct {
	RejectedBy string `json:"rejectedBy"`
	Reason     string `json:"reason"`
}

type TrainingScheduleRequest struct {
	ScheduledDate *strfmt.DateTime `json:"scheduledDate" binding:"required"`
	InstructorID  string           `json:"instructorId"`
}

type TrainingCompleteRequest struct {
	Score    *float64 `json:"score" binding:"omitempty,gte=0,lte=1"`
	Feedback string   `json:"feedback"`
}

type TrainingCancelRequest struct {
	CancelledBy string `json:"cancelledBy"`
	Reason      string `json:"reason"`
}

// =============================================================================
// Action results
// =============================================================================

type VerifyResult struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	VerifiedBy string          `json:"verifiedBy,omitempty"`
	VerifiedAt strfmt.DateTime `json:"verifiedAt"`
}

type ApproveResult struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	ApprovedBy string          `json:"approvedBy"`
	ApprovedAt strfmt.DateTime `json:"approvedAt"`
}

type RejectResult struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	RejectedBy      string          `json:"rejectedBy"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	RejectedAt      strfmt.DateTime `json:"rejectedAt"`
}

type ScheduleResult struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	ScheduledDate strfmt.DateTime `json:"scheduledDate"`
	InstructorID  string          `json:"instructorId,omitempty"`
}

type CompleteResult struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Score       *float64        `json:"score,omitempty"`
	Feedback    string          `json:"feedback,omitempty"`
	CompletedAt strfmt.DateTime `json:"completedAt"`
}

type CancelResult struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	CancelledBy string          `json:"cancelledBy"`
	Reason      string          `json:"reason,omitempty"`
	CancelledAt strfmt.DateTime `json:"cancelledAt"`
}

type SkillsResult struct {
	ID          string   `json:"id"`
	SkillsAdded []string `json:"skillsAdded"`
}

type EnrichResult struct {
	ID               string          `json:"id"`
	Sources          []string        `json:"sources"`
	Profiles         map[string]any  `json:"profiles"`
	Unsupported      []string        `json:"unsupported,omitempty"`
	Name             string          `json:"name,omitempty"`
	RelevanceScore   *float64        `json:"relevanceScore,omitempty"`
	ValueProposition string          `json:"valueProposition,omitempty"`
	EnrichedAt       strfmt.DateTime `json:"enrichedAt"`
}

type DeleteResult struct {
	ID string `json:"id"`
}

// =============================================================================
// Auth results
// =============================================================================

type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Name        string   `json:"name,omitempty"`
	CompanyID   string   `json:"companyId,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type Session struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
}

type TokenRefresh struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
}
