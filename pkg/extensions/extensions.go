// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package extensions defines the pluggable identity and audit seams of the
// HR directory service.
//
// # Overview
//
// The directory ships with development implementations:
//
//   - AuthProvider: MockTokenProvider validates "mock-jwt-token-<ms>"
//     tokens; NopAuthProvider accepts everything
//   - AuditLogger: SlogAuditLogger writes events to the service log
//
// A deployment that wires a real identity provider or audit sink passes its
// own implementations through ServiceOptions.
//
// # Usage
//
//	opts := extensions.DefaultOptions().
//	    WithAuth(myProvider).
//	    WithAudit(myAuditSink)
//	svc, err := directory.New(cfg, &opts)
package extensions

// ServiceOptions bundles the extension implementations handed to the
// directory service.
type ServiceOptions struct {
	// AuthProvider validates bearer tokens for /api/auth/me and
	// /api/auth/refresh.
	AuthProvider AuthProvider

	// AuditLogger records mutating operations.
	AuditLogger AuditLogger
}

// DefaultOptions returns a MockTokenProvider and a NopAuditLogger.
func DefaultOptions() ServiceOptions {
	return ServiceOptions{
		AuthProvider: &MockTokenProvider{},
		AuditLogger:  &NopAuditLogger{},
	}
}

// WithAuth returns a copy of opts using provider.
func (opts ServiceOptions) WithAuth(provider AuthProvider) ServiceOptions {
	opts.AuthProvider = provider
	return opts
}

// WithAudit returns a copy of opts using logger.
func (opts ServiceOptions) WithAudit(logger AuditLogger) ServiceOptions {
	opts.AuditLogger = logger
	return opts
}

// WithDefaults fills nil fields from DefaultOptions.
func (opts ServiceOptions) WithDefaults() ServiceOptions {
	def := DefaultOptions()
	if opts.AuthProvider == nil {
		opts.AuthProvider = def.AuthProvider
	}
	if opts.AuditLogger == nil {
		opts.AuditLogger = def.AuditLogger
	}
	return opts
}
