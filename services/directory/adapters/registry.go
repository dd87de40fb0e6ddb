// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package adapters simulates the external enrichment providers (LinkedIn,
// GitHub, Credly, ...) the directory would call for employee profiles.
//
// # Description
//
// Every adapter waits a provider-specific delay and then returns a fixed,
// provider-shaped object. The object is routed through the fallback
// Executor as a Static mock with the request as payload and no real call,
// so it comes back unwrapped and is counted as a mock execution.
//
//	Registry.Enrich(ctx, "emp_001", ["linkedin","github","myspace"])
//	   │
//	   ├─► errgroup ─► linkedin ─► sleep 1000ms·scale ─► Executor ─► profile
//	   ├─► errgroup ─► github   ─► sleep  800ms·scale ─► Executor ─► profile
//	   └─► "myspace" ─► Unsupported
//
// # Thread Safety
//
// Registry is safe for concurrent use after construction.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AleutianAI/AleutianHR/services/directory/fallback"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownProvider is returned by Call for names not in the registry.
var ErrUnknownProvider = errors.New("unknown enrichment provider")

// Request is the input handed to an adapter.
type Request struct {
	EmployeeID string         `json:"employeeId,omitempty"`
	Params     map[string]any `json:"params,omitempty"`
}

// Adapter is one simulated provider.
type Adapter struct {
	// Name is the lower-case source key, e.g. "linkedin".
	Name string

	// Provider is the display name.
	Provider string

	// Delay is the simulated latency before DelayScale is applied.
	Delay time.Duration

	// Sample builds the provider-shaped response.
	Sample func(req Request) map[string]any
}

// LatencyRecorder receives adapter latencies. observability.Metrics
// implements it.
type LatencyRecorder interface {
	ObserveAdapter(provider string, d time.Duration)
}

// Options configures a Registry.
type Options struct {
	// DelayScale multiplies every adapter delay. 0 disables the delay,
	// 1 uses the built-in latencies.
	DelayScale float64

	Logger   *slog.Logger
	Recorder LatencyRecorder
}

// Registry maps source names to adapters.
type Registry struct {
	adapters map[string]Adapter
	exec     *fallback.Executor
	scale    float64
	logger   *slog.Logger
	recorder LatencyRecorder
}

// NewRegistry creates a Registry with the built-in providers.
func NewRegistry(exec *fallback.Executor, opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DelayScale < 0 {
		opts.DelayScale = 0
	}
	r := &Registry{
		adapters: make(map[string]Adapter, len(builtin)),
		exec:     exec,
		scale:    opts.DelayScale,
		logger:   opts.Logger,
		recorder: opts.Recorder,
	}
	for _, a := range builtin {
		r.adapters[a.Name] = a
	}
	return r
}

// Names returns the registered source names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the adapter registered under name (case-insensitive).
func (r *Registry) Lookup(name string) (Adapter, bool) {
	a, ok := r.adapters[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// Call runs one adapter.
//
// # Outputs
//
//   - any: The provider-shaped object.
//   - error: ErrUnknownProvider, or ctx.Err() if cancelled during the delay.
func (r *Registry) Call(ctx context.Context, name string, req Request) (any, error) {
	a, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}

	start := time.Now()
	if err := r.wait(ctx, a.Delay); err != nil {
		return nil, err
	}

	out := r.exec.Execute(ctx, fallback.Call{
		Service:  a.Name,
		Endpoint: "adapter:" + a.Name,
		Payload:  req,
		Static:   a.Sample(req),
	})
	if r.recorder != nil {
		r.recorder.ObserveAdapter(a.Name, time.Since(start))
	}
	return out.Data, nil
}

func (r *Registry) wait(ctx context.Context, base time.Duration) error {
	d := time.Duration(float64(base) * r.scale)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// EnrichResult is the outcome of Enrich.
type EnrichResult struct {
	// Sources lists the providers that answered, in request order.
	Sources []string `json:"sources"`

	// Profiles maps source name to provider response.
	Profiles map[string]any `json:"profiles"`

	// Unsupported lists requested names with no adapter.
	Unsupported []string `json:"unsupported,omitempty"`
}

// Enrich calls every known source concurrently.
//
// # Description
//
// Source names are matched case-insensitively and de-duplicated. An empty
// list means DefaultEnrichSources. Unknown names are reported, not failed.
//
// # Outputs
//
//   - EnrichResult: Profiles of every known source.
//   - error: ctx.Err() if the context ended before all adapters answered.
func (r *Registry) Enrich(ctx context.Context, employeeID string, sources []string) (EnrichResult, error) {
	if len(sources) == 0 {
		sources = DefaultEnrichSources
	}

	res := EnrichResult{Profiles: make(map[string]any)}
	seen := make(map[string]bool, len(sources))
	var known []string
	for _, s := range sources {
		name := strings.ToLower(strings.TrimSpace(s))
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := r.adapters[name]; !ok {
			res.Unsupported = append(res.Unsupported, s)
			continue
		}
		known = append(known, name)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	req := Request{EmployeeID: employeeID}
	for _, name := range known {
		g.Go(func() error {
			data, err := r.Call(gctx, name, req)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Profiles[name] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EnrichResult{}, err
	}

	res.Sources = known
	if res.Sources == nil {
		res.Sources = []string{}
	}
	r.logger.Debug("Enrichment complete",
		"employee_id", employeeID,
		"sources", known,
		"unsupported", res.Unsupported)
	return res, nil
}
