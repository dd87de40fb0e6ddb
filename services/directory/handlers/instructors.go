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
	"github.com/gin-gonic/gin"
)

func ListInstructors(d *Deps) gin.HandlerFunc {
	return listHandler(d, instructorResource, "status", "specialization")
}

func GetInstructor(d *Deps) gin.HandlerFunc {
	return getHandler(d, instructorResource)
}

func CreateInstructor(d *Deps) gin.HandlerFunc {
	return createHandler(d, instructorResource, buildInstructor, "Instructor name and email are required")
}

func UpdateInstructor(d *Deps) gin.HandlerFunc {
	return updateHandler(d, instructorResource)
}
