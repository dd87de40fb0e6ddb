// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the /api routes of the HR directory.
//
// Every handler goes through the fallback Executor with a real-call stub.
// Until real backends exist the stub always fails, so every response is
// served from the mock fixture and carries "fallback": true. Writes are
// never persisted: a created record is echoed back with its generated id.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AleutianAI/AleutianHR/pkg/extensions"
	"github.com/AleutianAI/AleutianHR/services/directory/adapters"
	"github.com/AleutianAI/AleutianHR/services/directory/datatypes"
	"github.com/AleutianAI/AleutianHR/services/directory/fallback"
	"github.com/AleutianAI/AleutianHR/services/directory/middleware"
	"github.com/gin-gonic/gin"
)

// ErrNotImplemented is wrapped by UnimplementedBackend errors.
var ErrNotImplemented = errors.New("not implemented yet")

// RealBackend performs calls against the production HR systems.
type RealBackend interface {
	Do(ctx context.Context, resource, endpoint string, payload any) (any, error)
}

// UnimplementedBackend fails every call with "Real <resource> API not
// implemented yet".
type UnimplementedBackend struct{}

func (UnimplementedBackend) Do(_ context.Context, resource, _ string, _ any) (any, error) {
	return nil, fmt.Errorf("Real %s API %w", resource, ErrNotImplemented)
}

// Deps carries everything the handlers need.
type Deps struct {
	Executor *fallback.Executor
	Fixture  *fallback.Loader
	Adapters *adapters.Registry
	Backend  RealBackend
	Auth     extensions.AuthProvider
	Audit    extensions.AuditLogger
	Logger   *slog.Logger

	// ServiceName and Version are reported by /health.
	ServiceName string
	Version     string

	// Clock is swapped in tests.
	Clock func() time.Time
}

// NewDeps fills in defaults for every unset field of d.
func NewDeps(d Deps) *Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Fixture == nil {
		d.Fixture = fallback.NewLoader(nil, fallback.Options{Logger: d.Logger})
	}
	if d.Executor == nil {
		d.Executor = fallback.NewExecutor(d.Fixture, fallback.Options{Logger: d.Logger})
	}
	if d.Adapters == nil {
		d.Adapters = adapters.NewRegistry(d.Executor, adapters.Options{DelayScale: 1, Logger: d.Logger})
	}
	if d.Backend == nil {
		d.Backend = UnimplementedBackend{}
	}
	if d.Auth == nil {
		d.Auth = &extensions.MockTokenProvider{}
	}
	if d.Audit == nil {
		d.Audit = &extensions.NopAuditLogger{}
	}
	if d.ServiceName == "" {
		d.ServiceName = "hrdirectory"
	}
	if d.Version == "" {
		d.Version = "dev"
	}
	if d.Clock == nil {
		d.Clock = func() time.Time { return time.Now().UTC() }
	}
	return &d
}

// resource describes one CRUD family.
type resource struct {
	service  string // fixture key
	entity   string // audit resource type
	api      string // name used in real-call errors
	singular string
	prefix   string // id prefix
	base     string
}

var (
	companyResource = resource{
		service: "companies", entity: "company", api: "companies", singular: "Company",
		prefix: "comp", base: "/companies",
	}
	employeeResource = resource{
		service: "employees", entity: "employee", api: "employees", singular: "Employee",
		prefix: "emp", base: "/employees",
	}
	trainingResource = resource{
		service: "trainingRequests", entity: "trainingRequest", api: "training", singular: "Training request",
		prefix: "tr", base: "/training/requests",
	}
	instructorResource = resource{
		service: "instructors", entity: "instructor", api: "instructors", singular: "Instructor",
		prefix: "inst", base: "/instructors",
	}
)

// realCall binds the backend to one resource and endpoint.
func (d *Deps) realCall(api, endpoint string) fallback.RealCall {
	return func(ctx context.Context, payload any) (any, error) {
		return d.Backend.Do(ctx, api, endpoint, payload)
	}
}

func (d *Deps) run(c *gin.Context, res resource, endpoint string, payload any) fallback.Outcome {
	return d.Executor.Execute(c.Request.Context(), fallback.Call{
		Service:  res.service,
		Endpoint: endpoint,
		Payload:  payload,
		Real:     d.realCall(res.api, endpoint),
	})
}

func (d *Deps) newID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, d.Clock().UnixMilli())
}

// audit records a write as "<entity>.<action>". Logging failures never
// fail the request.
func (d *Deps) audit(c *gin.Context, res resource, action, id string, out fallback.Outcome) {
	ev := extensions.AuditEvent{
		EventType:    res.entity + "." + action,
		Timestamp:    d.Clock(),
		Action:       action,
		ResourceType: res.entity,
		ResourceID:   id,
		Outcome:      string(out.Source),
		Metadata: map[string]any{
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
		},
	}
	if info := middleware.AuthInfoFrom(c.Request.Context()); info != nil {
		ev.UserID = info.UserID
	}
	if err := d.Audit.Log(c.Request.Context(), ev); err != nil {
		d.Logger.Warn("Audit log failed", "event", ev.EventType, "error", err)
	}
}

// =============================================================================
// Generic CRUD handlers
// =============================================================================

func listHandler(d *Deps, res resource, filters ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := d.run(c, res, res.base, nil)
		data := out.Data
		if list, ok := data.([]any); ok {
			data = filterRecords(list, queryFilters(c, filters))
		}
		c.JSON(http.StatusOK, datatypes.OK(data, out.UsedMock()))
	}
}

func getHandler(d *Deps, res resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		out := d.run(c, res, res.base+"/"+id, nil)
		record, ok := findByID(out.Data, id)
		if !ok {
			c.JSON(http.StatusNotFound, datatypes.Fail(res.singular+" not found", nil))
			return
		}
		c.JSON(http.StatusOK, datatypes.OK(record, out.UsedMock()))
	}
}

// createHandler validates the body with build, then echoes it back with a
// generated id, createdAt, and the constructor defaults for absent keys.
func createHandler(d *Deps, res resource, build buildFunc, requiredMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindBody(c, nil, "")
		if !ok {
			return
		}
		id := d.newID(res.prefix)
		now := d.Clock()
		defaults, err := build(body, id, now)
		if err != nil {
			c.JSON(http.StatusBadRequest, datatypes.Fail(createErrorMessage(err, requiredMsg), err))
			return
		}

		record := make(map[string]any, len(body)+len(defaults)+2)
		for k, v := range defaults {
			record[k] = v
		}
		for k, v := range body {
			record[k] = v
		}
		record["id"] = id
		record["createdAt"] = timestamp(now)

		out := d.run(c, res, res.base, record)
		d.audit(c, res, "create", id, out)
		c.JSON(http.StatusCreated, datatypes.Response{
			Success:  true,
			Message:  res.singular + " created successfully",
			Data:     record,
			Fallback: out.UsedMock(),
		})
	}
}

// updateHandler echoes {id, ...body}. Body keys win, id included.
func updateHandler(d *Deps, res resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		body, ok := bindBody(c, nil, "")
		if !ok {
			return
		}
		record := make(map[string]any, len(body)+1)
		record["id"] = id
		for k, v := range body {
			record[k] = v
		}

		out := d.run(c, res, res.base+"/"+id, record)
		d.audit(c, res, "update", id, out)
		c.JSON(http.StatusOK, datatypes.Response{
			Success:  true,
			Message:  res.singular + " updated successfully",
			Data:     record,
			Fallback: out.UsedMock(),
		})
	}
}

func deleteHandler(d *Deps, res resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		result := datatypes.DeleteResult{ID: id}
		out := d.run(c, res, res.base+"/"+id, result)
		d.audit(c, res, "delete", id, out)
		c.JSON(http.StatusOK, datatypes.Response{
			Success:  true,
			Message:  res.singular + " deleted successfully",
			Data:     result,
			Fallback: out.UsedMock(),
		})
	}
}

// =============================================================================
// Record helpers
// =============================================================================

// queryFilters returns the non-empty query values of the named keys.
func queryFilters(c *gin.Context, keys []string) map[string]string {
	filters := make(map[string]string, len(keys))
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			filters[k] = v
		}
	}
	return filters
}

// filterRecords keeps the records whose fields equal every filter value.
// Only string fields can match. With no filters the list is returned as is,
// rows that are not objects included.
func filterRecords(list []any, filters map[string]string) []any {
	if len(filters) == 0 {
		return list
	}
	out := make([]any, 0, len(list))
	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if matches(record, filters) {
			out = append(out, record)
		}
	}
	return out
}

func matches(record map[string]any, filters map[string]string) bool {
	for k, want := range filters {
		got, ok := record[k].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// findByID returns the first record in data whose "id" equals id.
func findByID(data any, id string) (map[string]any, bool) {
	list, ok := data.([]any)
	if !ok {
		return nil, false
	}
	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if rid, _ := record["id"].(string); rid == id {
			return record, true
		}
	}
	return nil, false
}

// findByField is findByID on an arbitrary string field, case-insensitive.
func findByField(data any, field, value string) (map[string]any, bool) {
	list, ok := data.([]any)
	if !ok {
		return nil, false
	}
	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, _ := record[field].(string); v != "" && strings.EqualFold(v, value) {
			return record, true
		}
	}
	return nil, false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
