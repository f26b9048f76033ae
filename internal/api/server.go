package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Analyzer is the pipeline behind POST /api/run-geode.
type Analyzer interface {
	Run(ctx context.Context, url string) (json.RawMessage, error)
}

type Server struct {
	router   *chi.Mux
	analyzer Analyzer
	page     http.Handler
}

// NewServer wires the API routes; page, when non-nil, serves the browser UI at "/".
func NewServer(analyzer Analyzer, page http.Handler) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		analyzer: analyzer,
		page:     page,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/stats", s.handleStats)
	s.router.Post("/api/run-geode", s.handleRunGeode)

	if s.page != nil {
		s.router.Handle("/", s.page)
	}
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
