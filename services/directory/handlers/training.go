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
	"time"

	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/AleutianAI/AleutianHR/services/directory/domain"
	"github.com/gin-gonic/gin"
)

const trainingRequiredMsg = "Title, description, and type are required"

// ListTrainingRequests handles
// GET /api/training/requests?companyId=&employeeId=&status=&type=.
func ListTrainingRequests(d *Deps) gin.HandlerFunc {
	return listHandler(d, trainingResource, "companyId", "employeeId", "status", "type")
}

// GetTrainingRequest handles GET /api/training/requests/:id.
func GetTrainingRequest(d *Deps) gin.HandlerFunc {
	return getHandler(d, trainingResource)
}

// CreateTrainingRequest handles POST /api/training/requests. New requests
// are pending with medium priority unless the body says otherwise.
func CreateTrainingRequest(d *Deps) gin.HandlerFunc {
	return createHandler(d, trainingResource, buildTrainingRequest, trainingRequiredMsg)
}

// UpdateTrainingRequest handles PUT /api/training/requests/:id.
func UpdateTrainingRequest(d *Deps) gin.HandlerFunc {
	return updateHandler(d, trainingResource)
}

// DeleteTrainingRequest handles DELETE /api/training/requests/:id.
func DeleteTrainingRequest(d *Deps) gin.HandlerFunc {
	return deleteHandler(d, trainingResource)
}

// ApproveTrainingRequest handles POST /api/training/requests/:id/approve.
func ApproveTrainingRequest(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.TrainingApproveRequest
		if _, ok := bindBody(c, &req, ""); !ok {
			return
		}
		id := c.Param("id")
		result := datatypes.ApproveResult{
			ID:         id,
			Status:     string(domain.TrainingApproved),
			ApprovedBy: orDefault(req.ApprovedBy, "system"),
			ApprovedAt: timestamp(d.Clock()),
		}
		d.trainingAction(c, "approve", "Training request approved successfully", result,
			func(r *domain.TrainingRequest) error { return r.Approve(result.ApprovedBy) })
	}
}

// RejectTrainingRequest handles POST /api/training/requests/:id/reject.
func RejectTrainingRequest(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.TrainingRejectRequest
		if _, ok := bindBody(c, &req, ""); !ok {
			return
		}
		id := c.Param("id")
		result := datatypes.RejectResult{
			ID:              id,
			Status:          string(domain.TrainingRejected),
			RejectedBy:      orDefault(req.RejectedBy, "system"),
			RejectionReason: req.Reason,
			RejectedAt:      timestamp(d.Clock()),
		}
		d.trainingAction(c, "reject", "Training request rejected", result,
			func(r *domain.TrainingRequest) error { return r.Reject(result.RejectedBy, req.Reason) })
	}
}

// ScheduleTrainingRequest handles POST /api/training/requests/:id/schedule.
// scheduledDate is required and must be an RFC 3339 date-time.
func ScheduleTrainingRequest(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.TrainingScheduleRequest
		if _, ok := bindBody(c, &req, "Scheduled date is required"); !ok {
			return
		}
		id := c.Param("id")
		result := datatypes.ScheduleResult{
			ID:            id,
			Status:        string(domain.TrainingScheduled),
			ScheduledDate: timestamp(time.Time(*req.ScheduledDate)),
			InstructorID:  req.InstructorID,
		}
		d.trainingAction(c, "schedule", "Training scheduled successfully", result,
			func(r *domain.TrainingRequest) error {
				return r.Schedule(time.Time(*req.ScheduledDate), req.InstructorID)
			})
	}
}

// CompleteTrainingRequest handles POST /api/training/requests/:id/complete.
// score, when present, must be within [0, 1].
func CompleteTrainingRequest(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.TrainingCompleteRequest
		if _, ok := bindBody(c, &req, ""); !ok {
			return
		}
		id := c.Param("id")
		result := datatypes.CompleteResult{
			ID:          id,
			Status:      string(domain.TrainingCompleted),
			Score:       req.Score,
			Feedback:    req.Feedback,
			CompletedAt: timestamp(d.Clock()),
		}
		d.trainingAction(c, "complete", "Training completed successfully", result,
			func(r *domain.TrainingRequest) error { return r.Complete(req.Score, req.Feedback) })
	}
}

// CancelTrainingRequest handles POST /api/training/requests/:id/cancel.
func CancelTrainingRequest(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.TrainingCancelRequest
		if _, ok := bindBody(c, &req, ""); !ok {
			return
		}
		id := c.Param("id")
		result := datatypes.CancelResult{
			ID:          id,
			Status:      string(domain.TrainingCancelled),
			CancelledBy: orDefault(req.CancelledBy, "system"),
			Reason:      req.Reason,
			CancelledAt: timestamp(d.Clock()),
		}
		d.trainingAction(c, "cancel", "Training request cancelled", result,
			func(r *domain.TrainingRequest) error { return r.Cancel(req.Reason) })
	}
}

// trainingAction echoes result for an action on a training request. When
// the fixture holds the request, transition is replayed against its current
// status and an illegal move is logged; the response is not affected since
// nothing is persisted.
func (d *Deps) trainingAction(c *gin.Context, action, message string, result any,
	transition func(*domain.TrainingRequest) error) {
	id := c.Param("id")
	if current, ok := d.fixtureTrainingStatus(c, id); ok {
		r := &domain.TrainingRequest{ID: id, Status: current}
		if err := transition(r); err != nil {
			d.Logger.Warn("Training transition not allowed from fixture state",
				"id", id,
				"action", action,
				"status", current,
				"error", err)
		}
	}
	out := d.run(c, trainingResource, trainingResource.base+"/"+id+"/"+action, result)
	d.audit(c, trainingResource, action, id, out)
	c.JSON(http.StatusOK, datatypes.Response{
		Success:  true,
		Message:  message,
		Data:     result,
		Fallback: out.UsedMock(),
	})
}

func (d *Deps) fixtureTrainingStatus(c *gin.Context, id string) (domain.TrainingStatus, bool) {
	out := d.run(c, trainingResource, trainingResource.base+"/"+id, nil)
	record, ok := findByID(out.Data, id)
	if !ok {
		return "", false
	}
	status, _ := record["status"].(string)
	return domain.TrainingStatus(status), status != ""
}
