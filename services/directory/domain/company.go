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

// CompanyStatus is the verification state of a company.
type CompanyStatus string

const (
	CompanyPending  CompanyStatus = "pending"
	CompanyVerified CompanyStatus = "verified"
	CompanyRejected CompanyStatus = "rejected"
)

// HRContact is the person who administers a company account.
type HRContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email" validate:"required,hremail"`
	Phone string `json:"phone,omitempty"`
}

// Company is a customer organisation in the directory.
type Company struct {
	ID              string        `json:"id" validate:"required"`
	Name            string        `json:"name" validate:"required"`
	Domain          string        `json:"domain" validate:"required,hrdomain"`
	Industry        string        `json:"industry,omitempty"`
	Size            string        `json:"size,omitempty"`
	HRContact       HRContact     `json:"hrContact"`
	Status          CompanyStatus `json:"status" validate:"oneof=pending verified rejected"`
	VerifiedAt      *time.Time    `json:"verifiedAt,omitempty"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// NewCompany validates c and fills in status and timestamps.
// The domain is lower-cased before validation.
func NewCompany(c Company) (*Company, error) {
	c.Domain = strings.ToLower(strings.TrimSpace(c.Domain))
	if c.Status == "" {
		c.Status = CompanyPending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now()
	}
	c.UpdatedAt = c.CreatedAt
	if err := validateEntity("company", c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Verify marks the company verified. Already verified companies are rejected.
func (c *Company) Verify() error {
	if c.Status == CompanyVerified {
		return &TransitionError{Entity: "company", From: string(c.Status), Action: "verify"}
	}
	t := now()
	c.Status = CompanyVerified
	c.VerifiedAt = &t
	c.RejectionReason = ""
	c.UpdatedAt = t
	return nil
}

// Reject marks a pending company rejected with a reason.
func (c *Company) Reject(reason string) error {
	if c.Status != CompanyPending {
		return &TransitionError{Entity: "company", From: string(c.Status), Action: "reject"}
	}
	if strings.TrimSpace(reason) == "" {
		return &ValidationError{Entity: "company", Field: "rejectionReason", Reason: reasonRequired}
	}
	c.Status = CompanyRejected
	c.RejectionReason = reason
	c.UpdatedAt = now()
	return nil
}

// IsVerified reports whether the company passed verification.
func (c *Company) IsVerified() bool {
	return c.Status == CompanyVerified
}
