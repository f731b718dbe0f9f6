// Package api exposes the verification pipeline over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/analysis"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/store"
)

// Server holds the HTTP handlers over the orchestrator.
type Server struct {
	orchestrator *analysis.Orchestrator
}

// NewServer creates the API server.
func NewServer(orchestrator *analysis.Orchestrator) *Server {
	return &Server{orchestrator: orchestrator}
}

// Router builds the chi router with all verification routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/verification", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/{id}/claims", s.handleClaims)
		r.Get("/{id}/verified-text", s.handleVerifiedText)
		r.Get("/claim/{claimId}/evidence", s.handleEvidence)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	summary, err := s.orchestrator.Analyze(r.Context(), req.Text)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := s.orchestrator.Claims(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func (s *Server) handleVerifiedText(w http.ResponseWriter, r *http.Request) {
	result, err := s.orchestrator.VerifiedText(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEvidence(w http.ResponseWriter, r *http.Request) {
	result, err := s.orchestrator.Evidence(r.Context(), chi.URLParam(r, "claimId"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeFailure maps a pipeline error to a response: not_found is surfaced
// distinctly, everything else becomes a generic 500 with no internal detail.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	zap.L().Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "unexpected error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
