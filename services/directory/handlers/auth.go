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
	"strings"

	"github.com/AleutianAI/AleutianHR/pkg/extensions"
	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/AleutianAI/AleutianHR/services/directory/middleware"
	"github.com/gin-gonic/gin"
)

// userResource maps the auth routes onto the hrUsers fixture key.
var userResource = resource{
	service: "hrUsers", entity: "auth", api: "auth", singular: "User",
	prefix: "user", base: "/auth",
}

// Login handles POST /api/auth/login.
//
// # Description
//
// No password is checked. A known HR user (matched by email,
// case-insensitive) gets its fixture identity; anyone else gets a fresh
// employee identity. The token is a mock token valid for "7d".
func Login(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.LoginRequest
		if _, ok := bindBody(c, &req, "Email and password are required"); !ok {
			return
		}

		out := d.run(c, userResource, "/auth/login", map[string]any{"email": req.Email})
		var user datatypes.User
		if record, ok := findByField(out.Data, "email", req.Email); ok {
			user = userFromRecord(record)
		} else {
			user = datatypes.User{
				ID:    d.newID(userResource.prefix),
				Email: req.Email,
				Role:  extensions.RoleEmployee,
			}
		}
		user.Permissions = extensions.PermissionsFor(user.Role)

		d.audit(c, userResource, "login", user.ID, out)
		c.JSON(http.StatusOK, datatypes.Response{
			Success:  true,
			Message:  "Login successful",
			Data:     d.session(user),
			Fallback: out.UsedMock(),
		})
	}
}

// Register handles POST /api/auth/register. The role defaults to employee.
func Register(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.RegisterRequest
		if _, ok := bindBody(c, &req, "Email, password, first name, and last name are required"); !ok {
			return
		}
		role := orDefault(req.Role, extensions.RoleEmployee)
		user := datatypes.User{
			ID:          d.newID(userResource.prefix),
			Email:       strings.ToLower(strings.TrimSpace(req.Email)),
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Name:        strings.TrimSpace(req.FirstName + " " + req.LastName),
			CompanyID:   req.CompanyID,
			Role:        role,
			Permissions: extensions.PermissionsFor(role),
		}

		out := d.run(c, userResource, "/auth/register", user)
		d.audit(c, userResource, "register", user.ID, out)
		c.JSON(http.StatusCreated, datatypes.Response{
			Success:  true,
			Message:  "User registered successfully",
			Data:     d.session(user),
			Fallback: out.UsedMock(),
		})
	}
}

// Logout handles POST /api/auth/logout. Mock tokens are stateless, so
// there is nothing to revoke.
func Logout(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := d.run(c, userResource, "/auth/logout", map[string]any{})
		d.audit(c, userResource, "logout", "", out)
		c.JSON(http.StatusOK, datatypes.Response{
			Success:  true,
			Message:  "Logged out successfully",
			Fallback: out.UsedMock(),
		})
	}
}

// Me handles GET /api/auth/me. It runs behind AuthMiddleware.
func Me(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		info := middleware.GetAuthInfo(c)
		if info == nil {
			c.JSON(http.StatusUnauthorized, datatypes.Fail("Authentication required", nil))
			return
		}

		out := d.run(c, userResource, "/auth/me", nil)
		user := datatypes.User{ID: info.UserID, Email: info.Email, Role: info.Role}
		record, ok := findByID(out.Data, info.UserID)
		if !ok && info.Email != "" {
			record, ok = findByField(out.Data, "email", info.Email)
		}
		if ok {
			known := userFromRecord(record)
			user.Name = known.Name
			user.CompanyID = known.CompanyID
		}
		user.Permissions = info.Permissions
		if len(user.Permissions) == 0 {
			user.Permissions = extensions.PermissionsFor(user.Role)
		}

		c.JSON(http.StatusOK, datatypes.OK(user, out.UsedMock()))
	}
}

// Refresh handles POST /api/auth/refresh. The current token comes from the
// Authorization header or, failing that, the refreshToken body field.
func Refresh(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.RefreshRequest
		if _, ok := bindBody(c, &req, ""); !ok {
			return
		}
		token := middleware.BearerToken(c)
		if token == "" {
			token = strings.TrimSpace(req.RefreshToken)
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, datatypes.Fail("Refresh token required", nil))
			return
		}
		if _, err := d.Auth.Validate(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusUnauthorized, datatypes.Fail("Invalid refresh token", err))
			return
		}

		result := datatypes.TokenRefresh{
			Token:     extensions.IssueMockToken(d.Clock()),
			ExpiresIn: extensions.MockTokenTTL,
		}
		out := d.run(c, userResource, "/auth/refresh", result)
		c.JSON(http.StatusOK, datatypes.Response{
			Success:  true,
			Message:  "Token refreshed successfully",
			Data:     result,
			Fallback: out.UsedMock(),
		})
	}
}

func (d *Deps) session(user datatypes.User) datatypes.Session {
	return datatypes.Session{
		User:      user,
		Token:     extensions.IssueMockToken(d.Clock()),
		ExpiresIn: extensions.MockTokenTTL,
	}
}

func userFromRecord(record map[string]any) datatypes.User {
	str := func(k string) string {
		s, _ := record[k].(string)
		return s
	}
	return datatypes.User{
		ID:        str("id"),
		Email:     str("email"),
		FirstName: str("firstName"),
		LastName:  str("lastName"),
		Name:      str("name"),
		CompanyID: str("companyId"),
		Role:      orDefault(str("role"), extensions.RoleEmployee),
	}
}
