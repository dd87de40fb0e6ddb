// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

// Response is the envelope every /api route answers with.
//
// Fallback is true whenever Data came from mock data, on reads and writes
// alike.
type Response struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Data     any    `json:"data,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

// OK builds a successful envelope.
func OK(data any, fallback bool) Response {
	return Response{Success: true, Data: data, Fallback: fallback}
}

// Fail builds an error envelope. err may be nil.
func Fail(message string, err error) Response {
	r := Response{Success: false, Message: message}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Fixture string `json:"fixture"`
}

// DebugFixture is the data of GET /api/test.
type DebugFixture struct {
	Path      string `json:"path"`
	Companies any    `json:"companies"`
}
