// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "hrdirectory_request_id"

// RequestID assigns every request an id. A client-supplied X-Request-ID is
// kept; otherwise a random UUID is generated. The id is echoed in the
// response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestRecorder receives per-request measurements.
type RequestRecorder interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// RequestLogger logs each request through slog and reports it to rec
// (which may be nil).
//
// The route label is the matched route pattern ("/api/companies/:id"), not
// the raw path, so metric cardinality stays bounded.
func RequestLogger(logger *slog.Logger, rec RequestRecorder) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		if rec != nil {
			rec.ObserveRequest(c.Request.Method, route, status, elapsed)
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "HTTP request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("duration", elapsed),
			slog.String("request_id", GetRequestID(c)),
			slog.String("client_ip", c.ClientIP()))
	}
}

// Recovery turns handler panics into a 500 error envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := fmt.Errorf("%v", recovered)
		logger.Error("Handler panic",
			"path", c.Request.URL.Path,
			"request_id", GetRequestID(c),
			"error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			datatypes.Fail("Internal server error", err))
	})
}
