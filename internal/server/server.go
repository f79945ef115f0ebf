// Package server exposes the corpus over a JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/periodica-labs/periodica/internal/query"
)

// Server serves the HTTP API over one loaded snapshot.
type Server struct {
	engine *query.Engine
	port   int
	logger *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Engine *query.Engine
	Port   int
	Logger *slog.Logger
}

// NewServer creates an API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{engine: cfg.Engine, port: cfg.Port, logger: logger}
}

// Routes builds the router. Split from Serve so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/elements", s.handleElements)
		r.Get("/elements/{ident}", s.handleElement)
		r.Get("/elements/{ident}/reactions", s.handleElementReactions)
		r.Get("/reactions", s.handleReactions)
		r.Get("/reactions/{id}", s.handleReaction)
		r.Get("/compare", s.handleCompare)
		r.Get("/stats", s.handleStats)
	})

	return r
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
