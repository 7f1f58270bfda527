// Package server exposes the catalog over HTTP: a JSON API, the preview
// proxy, the static site, and a live-reload channel for authoring.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rlhub/datacat/internal/catalog"
	"github.com/rlhub/datacat/internal/preview"
	"github.com/rlhub/datacat/internal/search"
)

// Config holds server configuration.
type Config struct {
	Port     int
	SiteDir  string // directory containing the generated static site
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server serves the catalog API and static site.
type Server struct {
	cfg        Config
	store      *catalog.Store
	fetcher    *preview.Fetcher
	index      *search.Index // nil disables /api/search
	reload     *ReloadHub    // nil disables /ws/reload
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. index and reload may be nil.
func New(cfg Config, store *catalog.Store, fetcher *preview.Fetcher, index *search.Index, reload *ReloadHub) *Server {
	s := &Server{
		cfg:     cfg,
		store:   store,
		fetcher: fetcher,
		index:   index,
		reload:  reload,
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
	r.Use(middleware.Timeout(60 * time.Second))

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

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleListDatasets)
		r.Get("/datasets/{dataset}", s.handleGetDataset)
		r.Get("/datasets/{dataset}/{variant}", s.handleGetVariant)
		r.Get("/datasets/{dataset}/{variant}/schema", s.handleGetSchema)
		r.Get("/preview/{dataset}/{variant}", s.handlePreview)
		if s.index != nil {
			r.Post("/search", s.handleSearch)
		}
	})

	if s.reload != nil {
		r.Get("/ws/reload", s.reload.Handler())
	}

	if s.cfg.SiteDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.SiteDir)))
	}

	return r
}

// Router returns the chi router, used by tests and embedding callers.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("datacat server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
