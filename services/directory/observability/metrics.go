// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides metrics and tracing for the directory service.
//
// # Description
//
// Prometheus metrics cover:
//   - HTTP requests (by method, route, status)
//   - Fallback executions (by service and data source)
//   - Fixture load failures (by reason)
//   - Enrichment adapter latency (by provider)
//
// Tracing is OpenTelemetry; see InitTracer.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace for all metrics
const metricsNamespace = "aleutianhr"

// Metrics holds all Prometheus collectors for the directory service.
//
// # Description
//
// Create one per process with NewMetrics. A nil *Metrics is valid and
// records nothing, so packages can accept it optionally.
type Metrics struct {
	// RequestsTotal counts HTTP requests.
	// Labels: method, route, status
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures handler latency.
	// Labels: method, route
	RequestDurationSeconds *prometheus.HistogramVec

	// FallbackExecutionsTotal counts executor outcomes.
	// Labels: service, source (real, mock, fallback)
	FallbackExecutionsTotal *prometheus.CounterVec

	// FixtureLoadErrorsTotal counts mock fixture failures.
	// Labels: reason (read, parse)
	FixtureLoadErrorsTotal *prometheus.CounterVec

	// AdapterDurationSeconds measures enrichment adapter calls.
	// Labels: provider
	AdapterDurationSeconds *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all collectors on reg.
//
// # Inputs
//
//   - reg: Registry to register on. Pass prometheus.NewRegistry() in tests
//     to avoid duplicate registration panics.
//
// # Outputs
//
//   - *Metrics: Ready to use.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP handler latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		FallbackExecutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "fallback",
				Name:      "executions_total",
				Help:      "Fallback executor outcomes by service and data source",
			},
			[]string{"service", "source"},
		),
		FixtureLoadErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "fixture",
				Name:      "load_errors_total",
				Help:      "Mock fixture read or parse failures",
			},
			[]string{"reason"},
		),
		AdapterDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "adapter",
				Name:      "duration_seconds",
				Help:      "Enrichment adapter call duration in seconds",
				Buckets:   []float64{0.1, 0.3, 0.5, 0.8, 1, 1.5, 2, 5},
			},
			[]string{"provider"},
		),
		gatherer: reg,
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveFallback records one executor outcome.
func (m *Metrics) ObserveFallback(service, source string) {
	if m == nil {
		return
	}
	m.FallbackExecutionsTotal.WithLabelValues(service, source).Inc()
}

// ObserveFixtureError records a fixture read or parse failure.
func (m *Metrics) ObserveFixtureError(reason string) {
	if m == nil {
		return
	}
	m.FixtureLoadErrorsTotal.WithLabelValues(reason).Inc()
}

// ObserveAdapter records the duration of one adapter call.
func (m *Metrics) ObserveAdapter(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.AdapterDurationSeconds.WithLabelValues(provider).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
