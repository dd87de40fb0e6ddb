// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package directory provides the HR directory service.
//
// This package assembles the components of the service: configuration,
// the mock fixture loader, the fallback executor, the enrichment adapters,
// HTTP routing, and observability.
//
// # Request Path
//
//	HTTP ─► middleware chain ─► handler ─► fallback.Executor
//	                                          │
//	                         real backend ◄───┤ (always fails today)
//	                                          ▼
//	                                    fallback.Loader ─► fixture JSON
//
// # Usage
//
//	cfg, err := config.Load("hrdirectory.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc, err := directory.New(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
//
// # Extension Points
//
// A non-nil *extensions.ServiceOptions replaces the auth provider and audit
// logger selected by the configuration.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/AleutianAI/AleutianHR/pkg/extensions"
	"github.com/AleutianAI/AleutianHR/services/directory/adapters"
	"github.com/AleutianAI/AleutianHR/services/directory/config"
	"github.com/AleutianAI/AleutianHR/services/directory/fallback"
	"github.com/AleutianAI/AleutianHR/services/directory/handlers"
	"github.com/AleutianAI/AleutianHR/services/directory/middleware"
	"github.com/AleutianAI/AleutianHR/services/directory/observability"
	"github.com/AleutianAI/AleutianHR/services/directory/routes"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
)

// Version is the build version reported by /health. Set with
// -ldflags "-X github.com/AleutianAI/AleutianHR/services/directory.Version=...".
var Version = "dev"

// =============================================================================
// Interface Definition
// =============================================================================

// Service defines the contract for the HR directory service.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Run blocks and should
// only be called once per instance; Shutdown may be called from another
// goroutine.
type Service interface {
	// Run starts the HTTP server and blocks until Shutdown or a listener
	// error. A clean Shutdown returns nil.
	Run() error

	// Router returns the underlying Gin engine for testing.
	Router() *gin.Engine

	// Shutdown stops accepting requests and waits for in-flight requests
	// until ctx ends. It also stops the fixture watcher and flushes the
	// tracer and audit logger.
	Shutdown(ctx context.Context) error
}

// =============================================================================
// Implementation
// =============================================================================

// service implements Service.
//
// # Fields
//
//   - config: Configuration with defaults applied
//   - opts: Auth provider and audit logger in use
//   - router: Gin HTTP engine
//   - server: HTTP server wrapping router
//   - metrics: Prometheus collectors (nil when metrics are disabled)
//   - watcher: Fixture watcher (nil unless fixture.watch is set)
//   - tracerCleanup: Flushes the tracer provider
type service struct {
	config        config.Config
	opts          extensions.ServiceOptions
	logger        *slog.Logger
	router        *gin.Engine
	server        *http.Server
	metrics       *observability.Metrics
	loader        *fallback.Loader
	watcher       *fallback.Watcher
	tracerCleanup func(context.Context)

	mu          sync.Mutex
	stopWatcher context.CancelFunc
	closeOnce   sync.Once
}

// =============================================================================
// Constructor
// =============================================================================

// New creates the HR directory Service.
//
// # Description
//
//  1. Applies defaults for zero-valued configuration fields
//  2. Selects the auth provider and audit logger (opts wins over config)
//  3. Initializes OpenTelemetry tracing
//  4. Initializes Prometheus metrics on a private registry
//  5. Builds the fixture loader, fallback executor and adapter registry
//  6. Sets up middleware and routes
//
// # Inputs
//
//   - cfg: Service configuration. Zero values use defaults.
//   - opts: Extension options. May be nil.
//
// # Outputs
//
//   - Service: Ready-to-run service
//   - error: Non-nil if the configuration is invalid or tracing fails
func New(cfg config.Config, opts *extensions.ServiceOptions) (Service, error) {
	s := &service{
		config: applyConfigDefaults(cfg),
		logger: slog.Default(),
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	s.opts = s.selectOptions(opts)

	cleanup, err := observability.InitTracer(context.Background(), observability.TracingConfig{
		ServiceName:  s.config.Telemetry.ServiceName,
		Exporter:     s.config.Telemetry.Exporter,
		OTLPEndpoint: s.config.Telemetry.OTLPEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	s.tracerCleanup = cleanup

	if s.config.Telemetry.Metrics {
		s.metrics = observability.NewMetrics(prometheus.NewRegistry())
		s.logger.Info("Initialized Prometheus metrics")
	}

	s.initRouter()
	s.server = &http.Server{
		Addr:              ":" + strconv.Itoa(s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.config.Fixture.Watch {
		s.watcher = fallback.NewWatcher(s.loader.ResolvePath(), s.config.Fixture.WatchDebounce, s.logger, nil)
	}
	return s, nil
}

// selectOptions resolves the extension options. Explicit opts win; nil
// fields are filled from the configuration.
func (s *service) selectOptions(opts *extensions.ServiceOptions) extensions.ServiceOptions {
	var selected extensions.ServiceOptions
	if opts != nil {
		selected = *opts
	}
	if selected.AuthProvider == nil {
		switch s.config.Auth.Provider {
		case "none":
			selected.AuthProvider = &extensions.NopAuthProvider{}
		default:
			selected.AuthProvider = &extensions.MockTokenProvider{}
		}
	}
	if selected.AuditLogger == nil {
		switch s.config.Auth.Audit {
		case "log":
			selected.AuditLogger = extensions.NewSlogAuditLogger(s.logger)
		default:
			selected.AuditLogger = &extensions.NopAuditLogger{}
		}
	}
	return selected
}

// initRouter builds the dependency graph and registers routes.
func (s *service) initRouter() {
	gin.SetMode(s.config.Server.GinMode)

	tracer := otel.Tracer("aleutianhr.directory")
	var recorder fallback.Recorder
	var latency adapters.LatencyRecorder
	var requests middleware.RequestRecorder
	var metricsHandler http.Handler
	if s.metrics != nil {
		recorder, latency, requests = s.metrics, s.metrics, s.metrics
		metricsHandler = s.metrics.Handler()
	}

	fbOpts := fallback.Options{Logger: s.logger, Recorder: recorder, Tracer: tracer}
	s.loader = fallback.NewLoader(s.config.FixturePaths(), fbOpts)
	exec := fallback.NewExecutor(s.loader, fbOpts)
	registry := adapters.NewRegistry(exec, adapters.Options{
		DelayScale: s.config.Adapters.DelayScale,
		Logger:     s.logger,
		Recorder:   latency,
	})

	deps := handlers.NewDeps(handlers.Deps{
		Executor:    exec,
		Fixture:     s.loader,
		Adapters:    registry,
		Auth:        s.opts.AuthProvider,
		Audit:       s.opts.AuditLogger,
		Logger:      s.logger,
		ServiceName: s.config.Telemetry.ServiceName,
		Version:     Version,
	})

	limiter := middleware.NewRateLimiter(s.config.Server.RateLimitRPS, s.config.Server.RateLimitBurst)
	s.router = gin.New()
	s.router.Use(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.RequestLogger(s.logger, requests),
		limiter.Middleware(),
		otelgin.Middleware(s.config.Telemetry.ServiceName),
	)
	routes.SetupRoutes(s.router, deps, metricsHandler)
}

// =============================================================================
// Service Interface Methods
// =============================================================================

func (s *service) Run() error {
	defer s.cleanup()

	if s.watcher != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.mu.Lock()
		s.stopWatcher = cancel
		s.mu.Unlock()
		go func() {
			if err := s.watcher.Run(ctx); err != nil {
				s.logger.Warn("Fixture watcher stopped", "error", err)
			}
		}()
	}

	s.logger.Info("HR directory listening",
		"addr", s.server.Addr,
		"fixture", s.loader.ResolvePath(),
		"version", Version)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

func (s *service) Router() *gin.Engine {
	return s.router
}

func (s *service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.cleanup()
	return err
}

// cleanup stops the watcher and flushes telemetry and audit. Idempotent.
func (s *service) cleanup() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		if s.stopWatcher != nil {
			s.stopWatcher()
		}
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.opts.AuditLogger.Flush(ctx); err != nil {
			s.logger.Warn("Audit flush failed", "error", err)
		}
		if s.tracerCleanup != nil {
			s.tracerCleanup(ctx)
		}
	})
}

// =============================================================================
// Helper Functions
// =============================================================================

// applyConfigDefaults fills zero-valued fields from config.DefaultConfig.
//
// Booleans (fixture.watch, telemetry.metrics, logging.json) and
// adapters.delay_scale are taken as given, since their zero values are
// meaningful.
func applyConfigDefaults(cfg config.Config) config.Config {
	def := config.DefaultConfig()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.GinMode == "" {
		cfg.Server.GinMode = def.Server.GinMode
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = def.Server.RateLimitBurst
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Fixture.Path == "" && cfg.Fixture.LegacyPath == "" {
		cfg.Fixture.Path = def.Fixture.Path
		cfg.Fixture.LegacyPath = def.Fixture.LegacyPath
	}
	if cfg.Fixture.WatchDebounce == 0 {
		cfg.Fixture.WatchDebounce = def.Fixture.WatchDebounce
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = def.Telemetry.ServiceName
	}
	if cfg.Telemetry.Exporter == "" {
		cfg.Telemetry.Exporter = def.Telemetry.Exporter
	}
	if cfg.Telemetry.OTLPEndpoint == "" {
		cfg.Telemetry.OTLPEndpoint = def.Telemetry.OTLPEndpoint
	}
	if cfg.Auth.Provider == "" {
		cfg.Auth.Provider = def.Auth.Provider
	}
	if cfg.Auth.Audit == "" {
		cfg.Auth.Audit = def.Auth.Audit
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	return cfg
}
