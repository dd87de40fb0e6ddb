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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AleutianAI/AleutianHR/pkg/extensions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Setup
// =============================================================================

func init() {
	gin.SetMode(gin.TestMode)
}

// mockAuthProvider is a configurable mock for testing.
type mockAuthProvider struct {
	authInfo *extensions.AuthInfo
	err      error
}

func (m *mockAuthProvider) Validate(_ context.Context, _ string) (*extensions.AuthInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.authInfo, nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// =============================================================================
// BearerToken Tests
// =============================================================================

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid", "Bearer abc123", "abc123"},
		{"lower case scheme", "bearer ABC123", "ABC123"},
		{"missing", "", ""},
		{"no bearer prefix", "abc123", ""},
		{"basic auth", "Basic abc123", ""},
		{"empty bearer", "Bearer ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(c))
		})
	}
}

// =============================================================================
// AuthMiddleware Tests
// =============================================================================

func authRouter(provider extensions.AuthProvider) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(provider), func(c *gin.Context) {
		info := GetAuthInfo(c)
		c.JSON(http.StatusOK, gin.H{"user": info.UserID})
	})
	return r
}

func TestAuthMiddleware_Success(t *testing.T) {
	r := authRouter(&mockAuthProvider{authInfo: &extensions.AuthInfo{UserID: "u1"}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer t")

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", decode(t, w)["user"])
}

func TestAuthMiddleware_Unauthorized(t *testing.T) {
	r := authRouter(&mockAuthProvider{err: extensions.ErrUnauthorized})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authentication required", body["message"])
}

func TestAuthMiddleware_ProviderError(t *testing.T) {
	r := authRouter(&mockAuthProvider{err: errors.New("idp down")})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Authentication failed", body["message"])
	assert.Equal(t, "idp down", body["error"])
}

func TestAuthMiddleware_MockTokenProvider(t *testing.T) {
	r := authRouter(&extensions.MockTokenProvider{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+extensions.IssueMockToken(time.Now()))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetAuthInfo_NotSetOrWrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetAuthInfo(c))

	c.Set(ginAuthInfoKey, "not-auth-info")
	assert.Nil(t, GetAuthInfo(c))

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, AuthInfoFrom(c.Request.Context()))

	info := &extensions.AuthInfo{UserID: "x"}
	SetAuthInfo(c, info)
	assert.Same(t, info, GetAuthInfo(c))
	assert.Same(t, info, AuthInfoFrom(c.Request.Context()))
}

// =============================================================================
// RequestID / RequestLogger / Recovery
// =============================================================================

type requestRecorder struct {
	route  string
	status int
}

func (r *requestRecorder) ObserveRequest(_, route string, status int, _ time.Duration) {
	r.route = route
	r.status = status
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = GetRequestID(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-id-1", seen)
}

func TestRequestLogger_RecordsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := &requestRecorder{}
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger, rec))
	r.GET("/api/companies/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/companies/comp_9", nil))

	assert.Equal(t, "/api/companies/:id", rec.route)
	assert.Equal(t, http.StatusNotFound, rec.status)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "path=/api/companies/comp_9")
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "kaboom", body["error"])
}

// =============================================================================
// RateLimiter
// =============================================================================

func TestNewRateLimiter_DisabledIsNil(t *testing.T) {
	assert.Nil(t, NewRateLimiter(0, 10))

	var l *RateLimiter
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	l := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes[i] = w.Code
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Equal(t, "Too many requests", decode(t, w)["message"])
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_PerClient(t *testing.T) {
	l := NewRateLimiter(0.001, 1)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestRateLimiter_TableStaysBounded(t *testing.T) {
	l := NewRateLimiter(0.001, 1)
	l.maxClients = 3
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4", "10.0.0.5"} {
		clock = clock.Add(time.Second)
		l.Allow(ip)
		assert.LessOrEqual(t, len(l.clients), 3)
	}

	assert.NotContains(t, l.clients, "10.0.0.1")
	assert.NotContains(t, l.clients, "10.0.0.2")
	assert.Contains(t, l.clients, "10.0.0.5")

	// A returning client was evicted, so it starts with a fresh bucket.
	clock = clock.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.NotContains(t, l.clients, "10.0.0.3")
}

func TestRateLimiter_IdleClientsEvictedFirst(t *testing.T) {
	l := NewRateLimiter(0.001, 1)
	l.maxClients = 2
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	l.Allow("10.0.0.1")
	clock = clock.Add(time.Second)
	l.Allow("10.0.0.2")
	clock = clock.Add(11 * time.Minute)
	l.Allow("10.0.0.3")

	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "10.0.0.3")
}
