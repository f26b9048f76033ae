package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/baxromumarov/geode/internal/geode"
	"github.com/baxromumarov/geode/internal/observability"
)

// handleRunGeode accepts any JSON body. A null body is an internal error;
// any other body without a truthy "url" member is a 400.
func (s *Server) handleRunGeode(w http.ResponseWriter, r *http.Request) {
	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		if err == nil {
			err = errors.New("request body is null")
		}
		slog.Error("API error", "error", err)
		observability.IncError(observability.ErrorInput, "api")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var rawURL any
	if obj, ok := payload.(map[string]any); ok {
		rawURL = obj["url"]
	}
	if geode.IsFalsy(rawURL) {
		respondError(w, http.StatusBadRequest, "No URL provided")
		return
	}
	url := urlString(rawURL)

	body, err := s.analyzer.Run(r.Context(), url)
	if err != nil {
		slog.Error("API error", "url", url, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, body)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

// urlString keeps strings as-is; other JSON values use their JSON text and
// fail later at fetch time like any unreachable URL.
func urlString(v any) string {
	if str, ok := v.(string); ok {
		return str
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
