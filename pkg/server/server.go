// Package server exposes the citegraph pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness and build information
//	POST /v1/diagram           run the full pipeline, artifacts in a JSON envelope
//	POST /v1/diagram/{format}  run the full pipeline, one raw artifact as the body
//	POST /v1/stats             community summary without layout or rendering
//
// Every response carries an X-Run-ID header. Pipeline runs reuse the
// runner's cache, so a shared Redis cache lets several replicas serve the
// same graphs without recomputing layouts.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/isplab/citegraph/pkg/pipeline"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 16 << 20

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
}

// New creates a server backed by runner. defaults supplies option values for
// fields a request leaves unset.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, defaults: defaults, logger: logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(runID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(chimiddleware.AllowContentType("application/json"))
		r.Use(func(next http.Handler) http.Handler {
			return http.MaxBytesHandler(next, MaxBodyBytes)
		})
		r.Post("/diagram", s.diagram)
		r.Post("/diagram/{format}", s.diagramRaw)
		r.Post("/stats", s.stats)
	})

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
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
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
