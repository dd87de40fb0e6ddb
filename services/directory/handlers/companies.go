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

const companyRequiredMsg = "Company name, domain, and HR contact email are required"

// ListCompanies handles GET /api/companies?status=&industry=&size=.
func ListCompanies(d *Deps) gin.HandlerFunc {
	return listHandler(d, companyResource, "status", "industry", "size")
}

// GetCompany handles GET /api/companies/:id.
func GetCompany(d *Deps) gin.HandlerFunc {
	return getHandler(d, companyResource)
}

// CreateCompany handles POST /api/companies. New companies start pending.
func CreateCompany(d *Deps) gin.HandlerFunc {
	return createHandler(d, companyResource, buildCompany, companyRequiredMsg)
}

// UpdateCompany handles PUT /api/companies/:id.
func UpdateCompany(d *Deps) gin.HandlerFunc {
	return updateHandler(d, companyResource)
}

// DeleteCompany handles DELETE /api/companies/:id.
func DeleteCompany(d *Deps) gin.HandlerFunc {
	return deleteHandler(d, companyResource)
}

// VerifyCompany handles POST /api/companies/:id/verify.
func VerifyCompany(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req datatypes.CompanyVerifyRequest
		if _, ok := bindBody(c, &req, ""); !ok {
			return
		}
		result := datatypes.VerifyResult{
			ID:         id,
			Status:     string(domain.CompanyVerified),
			VerifiedBy: orDefault(req.VerifiedBy, "system"),
			VerifiedAt: timestamp(d.Clock()),
		}
		current := d.run(c, companyResource, companyResource.base+"/"+id, nil)
		if record, found := findByID(current.Data, id); found {
			status, _ := record["status"].(string)
			company := &domain.Company{ID: id, Status: domain.CompanyStatus(status)}
			if err := company.Verify(); err != nil {
				d.Logger.Info("Company already verified in fixture", "id", id, "error", err)
			}
		}
		out := d.run(c, companyResource, companyResource.base+"/"+id+"/verify", result)
		d.audit(c, companyResource, "verify", id, out)
		c.JSON(http.StatusOK, datatypes.Response{
			Success:  true,
			Message:  "Company verified successfully",
			Data:     result,
			Fallback: out.UsedMock(),
		})
	}
}
