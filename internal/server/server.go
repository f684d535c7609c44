// Package server implements the HTTP API for the flowgraph engine.
//
// The API exposes the computation pipeline over JSON: clients POST a history
// snapshot plus options and receive the computed layout or flow grouping.
// All endpoints are stateless; per-request work goes through a shared
// pipeline.Runner so caching behaves exactly like the CLI.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gitlite/flowgraph/pkg/pipeline"
)

// Server holds the shared dependencies of all handlers.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger

	// maxBodyBytes caps request body size. Large monorepo histories are
	// expected; arbitrary uploads are not.
	maxBodyBytes int64
}

// Option customizes a Server.
type Option func(*Server)

// WithMaxBodyBytes overrides the request body size cap.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBodyBytes = n }
}

// New creates a Server around the given runner.
// If logger is nil, the default logger is used.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:       runner,
		logger:       logger,
		maxBodyBytes: 32 << 20, // 32 MiB
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the chi router with all endpoints and middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/flows", s.handleFlows)
	})

	return r
}

// ListenAndServe runs the HTTP server until ctx is canceled, then shuts it
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
