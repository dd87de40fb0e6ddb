// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extensions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthorized is returned when authentication fails.
// Implementations should wrap this error with additional context.
//
// Example:
//
//	if !validToken {
//	    return nil, fmt.Errorf("invalid token format: %w", extensions.ErrUnauthorized)
//	}
var ErrUnauthorized = errors.New("unauthorized")

// MockTokenPrefix is the prefix of every token issued by IssueMockToken.
const MockTokenPrefix = "mock-jwt-token-"

// MockTokenTTL is the advertised lifetime of mock tokens ("expiresIn").
const MockTokenTTL = "7d"

// =============================================================================
// Roles
// =============================================================================

// Well-known directory roles.
const (
	RoleAdmin      = "admin"
	RoleHRManager  = "hr_manager"
	RoleInstructor = "instructor"
	RoleEmployee   = "employee"
)

// rolePermissions is the fixed role → permission list table. No permission
// is ever checked; the list is only copied into user payloads.
var rolePermissions = map[string][]string{
	RoleAdmin:      {"read", "write", "delete", "manage_users", "manage_companies"},
	RoleHRManager:  {"read", "write", "manage_employees", "approve_training"},
	RoleInstructor: {"read", "manage_training"},
	RoleEmployee:   {"read", "request_training"},
}

// PermissionsFor returns a copy of the permission list for role. Unknown or
// empty roles get the employee permissions.
func PermissionsFor(role string) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		perms = rolePermissions[RoleEmployee]
	}
	return append([]string(nil), perms...)
}

// =============================================================================
// AuthInfo
// =============================================================================

// AuthInfo contains identity information returned after successful authentication.
//
// Required fields (always populated):
//   - UserID: Unique identifier for the user
//
// Optional fields (may be empty):
//   - Email: User's email address
//   - Role: Directory role, one of the Role* constants
//   - Permissions: Copied from PermissionsFor(Role)
//   - IssuedAt: When the presented token was issued, if known
type AuthInfo struct {
	UserID      string
	Email       string
	Role        string
	Permissions []string
	IssuedAt    time.Time
}

// HasPermission checks if the user holds a specific permission.
func (a *AuthInfo) HasPermission(perm string) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// =============================================================================
// AuthProvider
// =============================================================================

// AuthProvider validates authentication tokens and returns user identity.
//
// # Description
//
// The directory calls Validate for routes that need a caller identity
// (GET /api/auth/me, POST /api/auth/refresh). The token format is
// implementation-specific.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type AuthProvider interface {
	// Validate checks if the token is valid and returns the user's identity.
	//
	// Returns ErrUnauthorized (or a wrapped form) if the token is invalid.
	Validate(ctx context.Context, token string) (*AuthInfo, error)
}

// NopAuthProvider accepts every token, including the empty one, and
// returns a local administrator. Selected with auth.provider = "none".
type NopAuthProvider struct{}

// Validate always succeeds.
func (p *NopAuthProvider) Validate(_ context.Context, _ string) (*AuthInfo, error) {
	return &AuthInfo{
		UserID:      "local-user",
		Role:        RoleAdmin,
		Permissions: PermissionsFor(RoleAdmin),
	}, nil
}

// MockTokenProvider accepts tokens issued by IssueMockToken.
//
// # Description
//
// No signature exists; the token is "mock-jwt-token-<unix-ms>". Validate
// checks the prefix and that the suffix is a positive integer, then
// returns Identity with IssuedAt taken from the suffix.
//
// # Limitations
//
//   - Any caller can forge a token. This is a development stand-in.
type MockTokenProvider struct {
	// Identity is returned for every valid token. Zero value uses
	// DefaultMockIdentity.
	Identity AuthInfo
}

// DefaultMockIdentity is the user returned for mock tokens.
func DefaultMockIdentity() AuthInfo {
	return AuthInfo{
		UserID:      "user_001",
		Email:       "hr.manager@company.com",
		Role:        RoleHRManager,
		Permissions: PermissionsFor(RoleHRManager),
	}
}

// Validate parses a mock token.
func (p *MockTokenProvider) Validate(ctx context.Context, token string) (*AuthInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	issued, err := ParseMockToken(token)
	if err != nil {
		return nil, err
	}
	info := p.Identity
	if info.UserID == "" {
		info = DefaultMockIdentity()
	}
	info.Permissions = append([]string(nil), info.Permissions...)
	info.IssuedAt = issued
	return &info, nil
}

// IssueMockToken returns "mock-jwt-token-<unix-ms of t>".
func IssueMockToken(t time.Time) string {
	return MockTokenPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// ParseMockToken returns the issue time encoded in a mock token.
func ParseMockToken(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, fmt.Errorf("missing token: %w", ErrUnauthorized)
	}
	suffix, ok := strings.CutPrefix(token, MockTokenPrefix)
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognised token format: %w", ErrUnauthorized)
	}
	ms, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, fmt.Errorf("malformed token timestamp: %w", ErrUnauthorized)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// Compile-time interface compliance checks.
var (
	_ AuthProvider = (*NopAuthProvider)(nil)
	_ AuthProvider = (*MockTokenProvider)(nil)
)
