// Package server implements the kle decode HTTP API.
//
// # Routes
//
//	GET  /health       liveness probe
//	POST /v1/decode    raw document in, normalized layout out
//	POST /v1/validate  raw document in, {"valid": bool, "keys": n} out
//
// /v1/decode accepts ?format=json|yaml|msgpack and ?editor_carry=true and
// reports whether the layout came from the cache in the X-Cache header.
// Errors are JSON [APIError] bodies.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	klerrors "github.com/matzehuels/kle/pkg/errors"
	"github.com/matzehuels/kle/pkg/pipeline"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config holds server settings.
type Config struct {
	Addr         string
	MaxBodyBytes int64

	// Defaults applied when a request does not set them.
	Format      string
	EditorCarry bool
}

// Server serves the decode API on top of a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
}

// New creates a server. A nil logger falls back to the runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = klerrors.MaxDocumentSize
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return &Server{runner: runner, logger: logger, cfg: cfg}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/decode", s.handleDecode)
		r.Post("/validate", s.handleValidate)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, &APIError{Status: http.StatusNotFound, Code: string(klerrors.ErrCodeNotFound), Message: "no such route"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, &APIError{Status: http.StatusMethodNotAllowed, Code: string(klerrors.ErrCodeUnsupported), Message: "method not allowed"})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
