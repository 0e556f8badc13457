// Package server exposes the search index over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/history"
	"github.com/ziadkadry99/docfind/internal/index"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// ReindexFunc rebuilds a fresh store/index pair from the corpus on
// disk. The server swaps the result into its holder.
type ReindexFunc func(ctx context.Context) (*corpus.Store, *index.Index, error)

// Server serves search queries against the current index snapshot.
type Server struct {
	cfg        Config
	holder     *index.Holder
	history    *history.Store // may be nil
	reindex    ReindexFunc    // may be nil; disables POST /api/reindex
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server around the given index holder. history and
// reindex are optional.
func New(cfg Config, holder *index.Holder, hist *history.Store, reindex ReindexFunc) *Server {
	s := &Server{
		cfg:     cfg,
		holder:  holder,
		history: hist,
		reindex: reindex,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/search", s.handleSearch)
	r.Get("/api/documents/{id}", s.handleGetDocument)
	r.Get("/api/categories", s.handleCategories)
	if s.reindex != nil {
		r.Post("/api/reindex", s.handleReindex)
	}

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
