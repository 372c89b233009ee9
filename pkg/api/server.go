// Package api exposes the diagnostic engine over HTTP JSON. The handlers
// are thin adapters: every answer is computed by pkg/diagnostics, every
// mutation goes through the topology store.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/calligan/netgraph/pkg/api/middleware"
	"github.com/calligan/netgraph/pkg/diagnostics"
	"github.com/calligan/netgraph/pkg/health"
	"github.com/calligan/netgraph/pkg/logging"
	"github.com/calligan/netgraph/pkg/metrics"
	"github.com/calligan/netgraph/pkg/topology"
)

// Server is the HTTP API server.
type Server struct {
	store     *topology.Store
	engine    *diagnostics.Engine
	checker   *health.Checker
	log       logging.Logger
	metrics   *metrics.Registry
	startTime time.Time
	version   string
	port      int
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) ServerOption {
	return func(s *Server) { s.log = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) ServerOption {
	return func(s *Server) { s.metrics = r }
}

// WithPort sets the listen port.
func WithPort(port int) ServerOption {
	return func(s *Server) { s.port = port }
}

// NewServer creates an API server over the given store. The diagnostic
// engine and health checker are wired internally.
func NewServer(store *topology.Store, opts ...ServerOption) *Server {
	s := &Server{
		store:     store,
		log:       logging.NewDefaultLogger(),
		metrics:   metrics.DefaultRegistry(),
		startTime: time.Now(),
		version:   "1.0.0",
		port:      8080,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = diagnostics.NewEngine(store,
		diagnostics.WithLogger(s.log.With(logging.Component("diagnostics"))),
		diagnostics.WithMetrics(s.metrics),
	)

	s.checker = health.NewChecker()
	s.checker.RegisterCheck("topology", health.TopologyCheck(store.Stats))
	s.checker.RegisterCheck("links", health.LinkStatusCheck(func() []*topology.Link {
		return store.LinksByStatus(topology.StatusDown)
	}))
	s.checker.RegisterCheck("memory", health.MemoryCheck())
	s.checker.RegisterReadinessCheck("topology", health.TopologyCheck(store.Stats))
	s.checker.RegisterLivenessCheck("process", func() health.Check {
		return health.Check{Name: "process", Status: health.StatusHealthy}
	})

	return s
}

// Engine returns the server's diagnostic engine.
func (s *Server) Engine() *diagnostics.Engine {
	return s.engine
}

// Handler builds the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Diagnostic queries
	mux.HandleFunc("GET /api/v1/health-summary", s.handleHealthSummary)
	mux.HandleFunc("GET /api/v1/services/{id}/path", s.handleServicePath)
	mux.HandleFunc("GET /api/v1/services/{id}/diagnosis", s.handleDiagnosis)
	mux.HandleFunc("GET /api/v1/links/{id}/blast-radius", s.handleBlastRadius)
	mux.HandleFunc("POST /api/v1/impact", s.handleImpact)

	// Topology management
	mux.HandleFunc("GET /api/v1/topology", s.handleExportTopology)
	mux.HandleFunc("POST /api/v1/topology", s.handleLoadTopology)
	mux.HandleFunc("PUT /api/v1/links/{id}/status", s.handleSetLinkStatus)

	// Process health and metrics
	mux.HandleFunc("GET /healthz", s.checker.HTTPHandler())
	mux.HandleFunc("GET /readyz", s.checker.ReadinessHandler())
	mux.HandleFunc("GET /livez", s.checker.LivenessHandler())
	mux.Handle("GET /metrics", promhttp.HandlerFor(
		s.metrics.GetPrometheusRegistry(),
		promhttp.HandlerOpts{},
	))

	// Innermost first: recovery catches handler panics, metrics measures the
	// real work, logging sees the request ID set by the outermost layer.
	handler := middleware.PanicRecovery(s.log)(mux)
	handler = middleware.Metrics(s.metrics)(handler)
	handler = middleware.Logging(s.log)(handler)
	handler = middleware.RequestID()(handler)
	return handler
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("API server starting", logging.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("API server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
