// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package fallback implements the degrade-to-mock-data policy shared by every
// route and enrichment adapter.
//
// # Description
//
// An Executor runs one outbound call. If the call fails (or none is given)
// it substitutes mock data from a MockSource, usually the on-disk fixture
// Loader. The result is an Outcome that records where the data came from.
//
//	Call ──► Real(ctx, payload) ──ok──► Outcome{Source: real}
//	            │
//	          error
//	            ▼
//	      MockSource.Load ──► payload == nil ? raw data : Envelope{fallback: true}
//
// # Read/Write Asymmetry
//
// Outcome.Value reproduces the legacy return shape exactly: reads yield the
// bare mock value, writes yield an Envelope. Handlers should use the typed
// Outcome fields instead.
package fallback

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FallbackMessage is the envelope message for write operations served from
// mock data.
const FallbackMessage = "Operation completed using mock data"

// Envelope is the write-path wrapper around mock data.
type Envelope struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Data     any    `json:"data"`
	Fallback bool   `json:"fallback"`
}

// Source records where an Outcome's data came from.
type Source string

const (
	// SourceReal means the real call succeeded.
	SourceReal Source = "real"
	// SourceMock means no real call was configured.
	SourceMock Source = "mock"
	// SourceFallback means the real call failed and mock data was used.
	SourceFallback Source = "fallback"
)

// RealCall is an outbound operation against a real backend.
type RealCall func(ctx context.Context, payload any) (any, error)

// MockSource supplies mock data by service name.
type MockSource interface {
	Load(ctx context.Context, service, endpoint string) any
}

// Recorder receives executor and loader measurements.
type Recorder interface {
	ObserveFallback(service, source string)
	ObserveFixtureError(reason string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFallback(string, string) {}
func (nopRecorder) ObserveFixtureError(string)     {}

// Options configures a Loader or Executor. Zero values get defaults.
type Options struct {
	Logger   *slog.Logger
	Recorder Recorder
	Tracer   trace.Tracer
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Recorder == nil {
		o.Recorder = nopRecorder{}
	}
	if o.Tracer == nil {
		o.Tracer = otel.Tracer("aleutianhr.fallback")
	}
	return o
}

// Call describes one executor invocation.
type Call struct {
	// Service is the fixture key, e.g. "companies".
	Service string

	// Endpoint is informational (logs, spans).
	Endpoint string

	// Payload is the request body for mutating operations. A nil interface
	// marks a read; reads are never wrapped in an Envelope.
	Payload any

	// Real is the outbound call. Nil skips straight to mock data.
	Real RealCall

	// Static, when non-nil, is used as the mock data instead of the
	// MockSource. Adapters and synthetic HR aggregates use it.
	Static any
}

// Outcome is the typed result of Execute.
type Outcome struct {
	// Data is the real result or the mock data.
	Data any

	// Source says which branch produced Data.
	Source Source

	// Err is the real call's failure when Source is SourceFallback.
	Err error

	// Envelope is set only for writes served by the fallback branch.
	Envelope *Envelope
}

// Value returns the legacy-compatible result: the Envelope for fallback
// writes, otherwise the bare data.
func (o Outcome) Value() any {
	if o.Envelope != nil {
		return *o.Envelope
	}
	return o.Data
}

// UsedMock reports whether Data came from mock data.
func (o Outcome) UsedMock() bool {
	return o.Source != SourceReal
}

// Executor runs calls with mock-data fallback.
//
// # Thread Safety
//
// Safe for concurrent use. Executors hold no mutable state.
type Executor struct {
	mocks    MockSource
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// NewExecutor creates an Executor that falls back to mocks.
func NewExecutor(mocks MockSource, opts Options) *Executor {
	opts = opts.withDefaults()
	return &Executor{
		mocks:    mocks,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		tracer:   opts.Tracer,
	}
}

// Execute runs call and never fails; failures become mock data.
//
// # Description
//
//  1. Real == nil: return mock data as-is (SourceMock).
//  2. Real succeeds: return its result unchanged (SourceReal).
//  3. Real fails, panics, or ctx is already done: log, load mock data
//     (SourceFallback). Writes additionally get an Envelope.
func (e *Executor) Execute(ctx context.Context, call Call) Outcome {
	ctx, span := e.tracer.Start(ctx, "fallback.Execute",
		trace.WithAttributes(
			attribute.String("fallback.service", call.Service),
			attribute.String("fallback.endpoint", call.Endpoint),
			attribute.Bool("fallback.write", call.Payload != nil),
		))
	defer span.End()

	out := e.execute(ctx, call)

	span.SetAttributes(attribute.String("fallback.source", string(out.Source)))
	if out.Err != nil {
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, out.Err.Error())
	}
	e.recorder.ObserveFallback(call.Service, string(out.Source))
	return out
}

// TryWithFallback is Execute(...).Value() with positional arguments.
func (e *Executor) TryWithFallback(ctx context.Context, service, endpoint string, payload any, real RealCall) any {
	return e.Execute(ctx, Call{
		Service:  service,
		Endpoint: endpoint,
		Payload:  payload,
		Real:     real,
	}).Value()
}

func (e *Executor) execute(ctx context.Context, call Call) Outcome {
	if call.Real == nil {
		return Outcome{Data: e.mock(ctx, call), Source: SourceMock}
	}

	result, err := invoke(ctx, call)
	if err == nil {
		return Outcome{Data: result, Source: SourceReal}
	}

	e.logger.Warn("Real API failed, using mock data",
		"service", call.Service,
		"endpoint", call.Endpoint,
		"error", err.Error())

	data := e.mock(ctx, call)
	out := Outcome{Data: data, Source: SourceFallback, Err: err}
	if call.Payload != nil {
		out.Envelope = &Envelope{
			Success:  true,
			Message:  FallbackMessage,
			Data:     data,
			Fallback: true,
		}
	}
	return out
}

// invoke runs the real call, converting panics into errors.
func invoke(ctx context.Context, call Call) (result any, err error) {
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("real call panicked: %v", r)
		}
	}()
	return call.Real(ctx, call.Payload)
}

func (e *Executor) mock(ctx context.Context, call Call) any {
	if call.Static != nil {
		return call.Static
	}
	if e.mocks == nil {
		return Unavailable()
	}
	return e.mocks.Load(ctx, call.Service, call.Endpoint)
}
