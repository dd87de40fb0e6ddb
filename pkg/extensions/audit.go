// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extensions

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// AuditEvent records one mutating directory operation.
//
// # Event Categories
//
//   - Authentication: "auth.login", "auth.register", "auth.logout", "auth.refresh"
//   - Data: "company.create", "employee.update", "trainingRequest.approve", ...
//
// Example:
//
//	event := AuditEvent{
//	    EventType:    "trainingRequest.approve",
//	    UserID:       "hr_001",
//	    Action:       "approve",
//	    ResourceType: "trainingRequest",
//	    ResourceID:   "tr_001",
//	    Outcome:      "fallback",
//	}
type AuditEvent struct {
	// EventType categorizes the event. Format: "resource.action".
	EventType string

	// Timestamp is when the event occurred. If zero, loggers set it to
	// time.Now().UTC().
	Timestamp time.Time

	// UserID identifies who performed the action, when known.
	UserID string

	// Action is the verb ("create", "update", "delete", "verify", ...).
	Action string

	// ResourceType is the entity kind ("company", "employee", "trainingRequest", ...).
	ResourceType string

	// ResourceID is the affected record, if any.
	ResourceID string

	// Outcome is "real", "mock", "fallback", or "rejected".
	Outcome string

	// Metadata holds extra key-value context (request id, sources, ...).
	Metadata map[string]any
}

// AuditLogger records audit events.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type AuditLogger interface {
	// Log records an event. Implementations should not block the request
	// for long; errors are logged by callers and never fail the request.
	Log(ctx context.Context, event AuditEvent) error

	// Flush writes any buffered events.
	Flush(ctx context.Context) error
}

// =============================================================================
// Implementations
// =============================================================================

// NopAuditLogger discards every event.
type NopAuditLogger struct{}

func (l *NopAuditLogger) Log(context.Context, AuditEvent) error { return nil }
func (l *NopAuditLogger) Flush(context.Context) error           { return nil }

// SlogAuditLogger writes events as structured log records under the
// "audit" group.
type SlogAuditLogger struct {
	logger *slog.Logger
}

// NewSlogAuditLogger creates an audit logger on top of logger. A nil logger
// means slog.Default().
func NewSlogAuditLogger(logger *slog.Logger) *SlogAuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAuditLogger{logger: logger}
}

// Log writes event at INFO.
func (l *SlogAuditLogger) Log(ctx context.Context, event AuditEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	attrs := []any{
		slog.String("event_type", event.EventType),
		slog.Time("timestamp", event.Timestamp),
		slog.String("action", event.Action),
		slog.String("resource_type", event.ResourceType),
		slog.String("outcome", event.Outcome),
	}
	if event.UserID != "" {
		attrs = append(attrs, slog.String("user_id", event.UserID))
	}
	if event.ResourceID != "" {
		attrs = append(attrs, slog.String("resource_id", event.ResourceID))
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}
	l.logger.LogAttrs(ctx, slog.LevelInfo, "Audit event", slog.Group("audit", attrs...))
	return nil
}

// Flush is a no-op; slog handlers write synchronously.
func (l *SlogAuditLogger) Flush(context.Context) error { return nil }

// MemoryAuditLogger keeps events in memory. Useful in tests.
type MemoryAuditLogger struct {
	mu     sync.Mutex
	events []AuditEvent
}

// Log appends event.
func (l *MemoryAuditLogger) Log(_ context.Context, event AuditEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *MemoryAuditLogger) Flush(context.Context) error { return nil }

// Events returns a copy of the recorded events.
func (l *MemoryAuditLogger) Events() []AuditEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]AuditEvent(nil), l.events...)
}

var (
	_ AuditLogger = (*NopAuditLogger)(nil)
	_ AuditLogger = (*SlogAuditLogger)(nil)
	_ AuditLogger = (*MemoryAuditLogger)(nil)
)
