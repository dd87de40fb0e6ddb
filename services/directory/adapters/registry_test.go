// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AleutianAI/AleutianHR/services/directory/fallback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type latencies struct {
	mu    sync.Mutex
	calls map[string]int
}

func (l *latencies) ObserveAdapter(provider string, _ time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.calls == nil {
		l.calls = map[string]int{}
	}
	l.calls[provider]++
}

func newRegistry(scale float64, rec LatencyRecorder) *Registry {
	exec := fallback.NewExecutor(nil, fallback.Options{})
	return NewRegistry(exec, Options{DelayScale: scale, Recorder: rec})
}

func TestRegistry_HasAllProviders(t *testing.T) {
	r := newRegistry(0, nil)
	names := r.Names()

	assert.Len(t, names, 16)
	for _, a := range builtin {
		assert.GreaterOrEqual(t, a.Delay, 300*time.Millisecond, a.Name)
		assert.LessOrEqual(t, a.Delay, 1200*time.Millisecond, a.Name)
		assert.NotEmpty(t, a.Provider, a.Name)
	}
}

func TestRegistry_CallReturnsProviderShape(t *testing.T) {
	rec := &latencies{}
	r := newRegistry(0, rec)

	got, err := r.Call(context.Background(), "LinkedIn", Request{EmployeeID: "emp_001"})

	require.NoError(t, err)
	profile, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "li_emp_001", profile["profileId"])
	_, wrapped := got.(fallback.Envelope)
	assert.False(t, wrapped)
	assert.Equal(t, 1, rec.calls[LinkedIn])
}

func TestRegistry_EveryAdapterAnswers(t *testing.T) {
	r := newRegistry(0, nil)
	for _, name := range r.Names() {
		got, err := r.Call(context.Background(), name, Request{EmployeeID: "e"})
		require.NoError(t, err, name)
		assert.NotEmpty(t, got, name)
	}
}

func TestRegistry_UnknownProvider(t *testing.T) {
	r := newRegistry(0, nil)
	_, err := r.Call(context.Background(), "myspace", Request{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRegistry_DelayHonoursScale(t *testing.T) {
	r := newRegistry(0.05, nil) // sendgrid: 300ms * 0.05 = 15ms

	start := time.Now()
	_, err := r.Call(context.Background(), SendGrid, Request{})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestRegistry_DelayCancelled(t *testing.T) {
	r := newRegistry(1, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Call(ctx, Gemini, Request{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRegistry_EnrichDefaults(t *testing.T) {
	r := newRegistry(0, nil)

	res, err := r.Enrich(context.Background(), "emp_002", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{LinkedIn, GitHub}, res.Sources)
	assert.Contains(t, res.Profiles, LinkedIn)
	assert.Contains(t, res.Profiles, GitHub)
	assert.Empty(t, res.Unsupported)
}

func TestRegistry_EnrichReportsUnsupportedAndDedupes(t *testing.T) {
	r := newRegistry(0, nil)

	res, err := r.Enrich(context.Background(), "emp_001",
		[]string{"GitHub", "github", "myspace", "credly"})

	require.NoError(t, err)
	assert.Equal(t, []string{GitHub, Credly}, res.Sources)
	assert.Equal(t, []string{"myspace"}, res.Unsupported)
	assert.Len(t, res.Profiles, 2)
}

func TestRegistry_EnrichRunsConcurrently(t *testing.T) {
	r := newRegistry(0.1, nil) // linkedin 100ms, github 80ms, gemini 120ms

	start := time.Now()
	_, err := r.Enrich(context.Background(), "e", []string{LinkedIn, GitHub, Gemini})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 280*time.Millisecond)
}

func TestRegistry_EnrichCancelled(t *testing.T) {
	r := newRegistry(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Enrich(ctx, "e", []string{LinkedIn})

	assert.ErrorIs(t, err, context.Canceled)
}
