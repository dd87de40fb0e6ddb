// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// staticMocks is an in-memory MockSource.
type staticMocks map[string]any

func (s staticMocks) Load(_ context.Context, service, _ string) any {
	if v, ok := s[service]; ok {
		return v
	}
	return map[string]any(s)
}

func failingCall(context.Context, any) (any, error) {
	return nil, errors.New("Real companies API not implemented yet")
}

var companiesMock = []any{map[string]any{"id": "comp_001"}}

func newTestExecutor(rec Recorder) *Executor {
	return NewExecutor(staticMocks{"companies": companiesMock}, Options{Recorder: rec})
}

// =============================================================================
// Branches
// =============================================================================

func TestExecutor_ReadFallbackReturnsRawMock(t *testing.T) {
	e := newTestExecutor(nil)

	got := e.TryWithFallback(context.Background(), "companies", "/companies", nil, failingCall)

	assert.Equal(t, companiesMock, got)
}

func TestExecutor_WriteFallbackReturnsEnvelope(t *testing.T) {
	e := newTestExecutor(nil)

	got := e.TryWithFallback(context.Background(), "companies", "/companies",
		map[string]any{"x": 1}, failingCall)

	assert.Equal(t, Envelope{
		Success:  true,
		Message:  "Operation completed using mock data",
		Data:     companiesMock,
		Fallback: true,
	}, got)
}

func TestExecutor_NoRealCallReturnsRawMockEvenForWrites(t *testing.T) {
	e := newTestExecutor(nil)

	out := e.Execute(context.Background(), Call{
		Service: "companies",
		Payload: map[string]any{"x": 1},
	})

	assert.Equal(t, SourceMock, out.Source)
	assert.Nil(t, out.Envelope)
	assert.Equal(t, companiesMock, out.Value())
	assert.True(t, out.UsedMock())
}

func TestExecutor_RealSuccessIsUnchanged(t *testing.T) {
	e := newTestExecutor(nil)
	real := map[string]any{"id": "live"}

	out := e.Execute(context.Background(), Call{
		Service: "companies",
		Payload: map[string]any{"x": 1},
		Real: func(_ context.Context, payload any) (any, error) {
			assert.Equal(t, map[string]any{"x": 1}, payload)
			return real, nil
		},
	})

	assert.Equal(t, SourceReal, out.Source)
	assert.False(t, out.UsedMock())
	assert.Equal(t, real, out.Value())
	assert.Nil(t, out.Envelope)
}

func TestExecutor_FallbackRecordsError(t *testing.T) {
	e := newTestExecutor(nil)

	out := e.Execute(context.Background(), Call{Service: "companies", Real: failingCall})

	assert.Equal(t, SourceFallback, out.Source)
	require.Error(t, out.Err)
	assert.Contains(t, out.Err.Error(), "not implemented yet")
}

func TestExecutor_PanicInRealCallFallsBack(t *testing.T) {
	e := newTestExecutor(nil)

	out := e.Execute(context.Background(), Call{
		Service: "companies",
		Real:    func(context.Context, any) (any, error) { panic("boom") },
	})

	assert.Equal(t, SourceFallback, out.Source)
	assert.Contains(t, out.Err.Error(), "boom")
	assert.Equal(t, companiesMock, out.Data)
}

func TestExecutor_CancelledContextSkipsRealCall(t *testing.T) {
	e := newTestExecutor(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false

	out := e.Execute(ctx, Call{
		Service: "companies",
		Real: func(context.Context, any) (any, error) {
			called = true
			return "live", nil
		},
	})

	assert.False(t, called)
	assert.Equal(t, SourceFallback, out.Source)
	assert.ErrorIs(t, out.Err, context.Canceled)
}

func TestExecutor_StaticOverridesSource(t *testing.T) {
	e := newTestExecutor(nil)
	static := map[string]any{"totalEmployees": 156}

	out := e.Execute(context.Background(), Call{Service: "hrDashboard", Real: failingCall, Static: static})

	assert.Equal(t, static, out.Data)
}

func TestExecutor_UnavailableFlowsThroughEnvelope(t *testing.T) {
	e := NewExecutor(nil, Options{})

	got := e.TryWithFallback(context.Background(), "companies", "/companies", map[string]any{"a": 1}, failingCall)

	env, ok := got.(Envelope)
	require.True(t, ok)
	assert.True(t, env.Fallback)
	assert.True(t, IsUnavailable(env.Data))
}

// =============================================================================
// Instrumentation
// =============================================================================

func TestExecutor_RecordsSourcePerService(t *testing.T) {
	rec := newCountingRecorder()
	e := newTestExecutor(rec)

	e.Execute(context.Background(), Call{Service: "companies", Real: failingCall})
	e.Execute(context.Background(), Call{Service: "companies"})

	assert.Equal(t, 1, rec.fallbacks["companies/fallback"])
	assert.Equal(t, 1, rec.fallbacks["companies/mock"])
}

func TestExecutor_EmitsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	e := NewExecutor(staticMocks{}, Options{Tracer: tp.Tracer("test")})

	e.Execute(context.Background(), Call{Service: "employees", Endpoint: "/employees", Real: failingCall})

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "fallback.Execute", spans[0].Name())
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "employees", attrs["fallback.service"].AsString())
	assert.Equal(t, "fallback", attrs["fallback.source"].AsString())
}
