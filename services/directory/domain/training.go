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
	"strings"
	"time"
)

// TrainingType classifies a training request.
type TrainingType string

const (
	TrainingCourse        TrainingType = "course"
	TrainingWorkshop      TrainingType = "workshop"
	TrainingCertification TrainingType = "certification"
	TrainingMentoring     TrainingType = "mentoring"
	TrainingConference    TrainingType = "conference"
)

// TrainingStatus is the lifecycle state of a training request.
//
//	pending ──approve──► approved ──schedule──► scheduled ──complete──► completed
//	   │                    │
//	   └──────reject────────┴──► rejected
//
// Any non-terminal status can be cancelled.
type TrainingStatus string

const (
	TrainingPending   TrainingStatus = "pending"
	TrainingApproved  TrainingStatus = "approved"
	TrainingRejected  TrainingStatus = "rejected"
	TrainingScheduled TrainingStatus = "scheduled"
	TrainingCompleted TrainingStatus = "completed"
	TrainingCancelled TrainingStatus = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s TrainingStatus) Terminal() bool {
	return s == TrainingCompleted || s == TrainingRejected || s == TrainingCancelled
}

// Priority orders training requests for HR review.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// TrainingRequest is an employee's request for training.
type TrainingRequest struct {
	ID              string         `json:"id" validate:"required"`
	CompanyID       string         `json:"companyId,omitempty"`
	EmployeeID      string         `json:"employeeId,omitempty"`
	Title           string         `json:"title" validate:"required"`
	Description     string         `json:"description" validate:"required"`
	Type            TrainingType   `json:"type" validate:"required,oneof=course workshop certification mentoring conference"`
	Priority        Priority       `json:"priority" validate:"oneof=low medium high urgent"`
	Status          TrainingStatus `json:"status" validate:"oneof=pending approved rejected scheduled completed cancelled"`
	MatchScore      float64        `json:"matchScore" validate:"gte=0,lte=1"`
	ApprovedBy      string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty"`
	RejectedBy      string         `json:"rejectedBy,omitempty"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	ScheduledDate   *time.Time     `json:"scheduledDate,omitempty"`
	InstructorID    string         `json:"instructorId,omitempty"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	CompletionScore *float64       `json:"completionScore,omitempty" validate:"omitempty,gte=0,lte=1"`
	Feedback        string         `json:"feedback,omitempty"`
	CancelReason    string         `json:"cancelReason,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// NewTrainingRequest validates r and fills in status, priority and timestamps.
func NewTrainingRequest(r TrainingRequest) (*TrainingRequest, error) {
	if r.Status == "" {
		r.Status = TrainingPending
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now()
	}
	r.UpdatedAt = r.CreatedAt
	if err := validateEntity("trainingRequest", r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *TrainingRequest) transitionErr(action string) error {
	return &TransitionError{Entity: "trainingRequest", From: string(r.Status), Action: action}
}

// Approve moves a pending request to approved.
func (r *TrainingRequest) Approve(approvedBy string) error {
	if r.Status != TrainingPending {
		return r.transitionErr("approve")
	}
	t := now()
	r.Status = TrainingApproved
	r.ApprovedBy = approvedBy
	r.ApprovedAt = &t
	r.UpdatedAt = t
	return nil
}

// Reject moves a pending or approved request to rejected.
func (r *TrainingRequest) Reject(rejectedBy, reason string) error {
	if r.Status != TrainingPending && r.Status != TrainingApproved {
		return r.transitionErr("reject")
	}
	r.Status = TrainingRejected
	r.RejectedBy = rejectedBy
	r.RejectionReason = reason
	r.UpdatedAt = now()
	return nil
}

// Schedule requires a prior Approve.
func (r *TrainingRequest) Schedule(date time.Time, instructorID string) error {
	if r.Status != TrainingApproved {
		return r.transitionErr("schedule")
	}
	if date.IsZero() {
		return &ValidationError{Entity: "trainingRequest", Field: "scheduledDate", Reason: reasonRequired}
	}
	r.Status = TrainingScheduled
	r.ScheduledDate = &date
	r.InstructorID = instructorID
	r.UpdatedAt = now()
	return nil
}

// Complete closes a scheduled request. score may be nil; when set it must
// lie in [0, 1].
func (r *TrainingRequest) Complete(score *float64, feedback string) error {
	if r.Status != TrainingScheduled {
		return r.transitionErr("complete")
	}
	if score != nil && (*score < 0 || *score > 1) {
		return &ValidationError{Entity: "trainingRequest", Field: "completionScore", Reason: "must be between 0 and 1"}
	}
	t := now()
	r.Status = TrainingCompleted
	r.CompletedAt = &t
	r.CompletionScore = score
	r.Feedback = strings.TrimSpace(feedback)
	r.UpdatedAt = t
	return nil
}

// Cancel stops any request that has not reached a terminal status.
func (r *TrainingRequest) Cancel(reason string) error {
	if r.Status.Terminal() {
		return r.transitionErr("cancel")
	}
	r.Status = TrainingCancelled
	r.CancelReason = reason
	r.UpdatedAt = now()
	return nil
}
