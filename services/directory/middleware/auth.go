// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the HR directory service.
//
// # Chain
//
//	Request
//	   │
//	   ▼
//	Recovery ─► RequestID ─► RequestLogger ─► RateLimit ─► otelgin
//	   │
//	   ▼
//	/api/auth/me ─► AuthMiddleware ─► handler
//
// # Authentication Flow
//
// AuthMiddleware extracts a bearer token from the Authorization header,
// validates it with the configured AuthProvider, and stores the resulting
// AuthInfo in the Gin context. Only routes that need an identity use it;
// everything else in the directory is anonymous.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/AleutianAI/AleutianHR/pkg/extensions"
	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/gin-gonic/gin"
)

// =============================================================================
// Context Helpers
// =============================================================================

// authInfoKey stores the caller identity in both the Gin context and the
// request context.
type authInfoKey struct{}

const ginAuthInfoKey = "hrdirectory.auth_info"

// SetAuthInfo attaches info to the request. Handlers read it with
// GetAuthInfo; code that only sees a context.Context uses AuthInfoFrom.
func SetAuthInfo(c *gin.Context, info *extensions.AuthInfo) {
	c.Set(ginAuthInfoKey, info)
	if c.Request != nil {
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), authInfoKey{}, info))
	}
}

// GetAuthInfo returns the identity stored by AuthMiddleware, or nil for
// anonymous requests.
//
// # Examples
//
//	info := middleware.GetAuthInfo(c)
//	if info == nil {
//	    c.JSON(401, datatypes.Fail("Authentication required", nil))
//	    return
//	}
func GetAuthInfo(c *gin.Context) *extensions.AuthInfo {
	v, ok := c.Get(ginAuthInfoKey)
	if !ok {
		return nil
	}
	info, _ := v.(*extensions.AuthInfo)
	return info
}

// AuthInfoFrom returns the identity attached to ctx by SetAuthInfo.
func AuthInfoFrom(ctx context.Context) *extensions.AuthInfo {
	info, _ := ctx.Value(authInfoKey{}).(*extensions.AuthInfo)
	return info
}

// =============================================================================
// Auth Middleware
// =============================================================================

// AuthMiddleware rejects requests whose bearer token provider does not
// accept. Rejections use the standard envelope with status 401:
//
//	{"success": false, "message": "Authentication required", "error": "..."}
//
// ErrUnauthorized from the provider maps to "Authentication required";
// any other provider error maps to "Authentication failed".
func AuthMiddleware(provider extensions.AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := provider.Validate(c.Request.Context(), BearerToken(c))
		switch {
		case errors.Is(err, extensions.ErrUnauthorized):
			c.AbortWithStatusJSON(http.StatusUnauthorized, datatypes.Fail("Authentication required", err))
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, datatypes.Fail("Authentication failed", err))
			return
		}
		SetAuthInfo(c, info)
		c.Next()
	}
}

// BearerToken returns the token of an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme. The
// scheme match is case-insensitive.
func BearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
