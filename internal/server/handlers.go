package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/iamerkut/search/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	s.logger.Debug("search request", zap.String("query", query))
	response, err := s.engine.Search(r.Context(), query)
	if err != nil {
		s.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")
	popular, err := s.engine.Popular(r.Context(), limit)
	if err != nil {
		s.logger.Error("popular queries failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if popular == nil {
		popular = []models.PopularQuery{}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"popular": popular})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	limit := queryInt(r, "limit")
	suggestions, err := s.engine.Suggest(r.Context(), prefix, limit)
	if err != nil {
		s.logger.Error("suggestions failed", zap.String("prefix", prefix), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLegacySuggest serves the old direct-script contract: a referer
// allow-list gate, then an action switch over the same three operations.
func (s *Server) handleLegacySuggest(w http.ResponseWriter, r *http.Request) {
	if !s.refererAllowed(r) {
		s.respondError(w, http.StatusForbidden, "Access denied")
		return
	}
	switch r.URL.Query().Get("action") {
	case "", "search":
		s.handleSearch(w, r)
	case "popular":
		s.handlePopular(w, r)
	case "suggestions":
		s.handleSuggestions(w, r)
	default:
		s.respondError(w, http.StatusBadRequest, "Unknown action")
	}
}

// refererAllowed accepts requests with no referer, a referer containing the
// request host, or one containing a configured allow-list entry.
func (s *Server) refererAllowed(r *http.Request) bool {
	referer := r.Referer()
	if referer == "" {
		return true
	}
	if r.Host != "" && strings.Contains(referer, r.Host) {
		return true
	}
	for _, allowed := range s.config.AllowedReferers {
		if allowed != "" && strings.Contains(referer, allowed) {
			return true
		}
	}
	return false
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}

// respondJSON writes the JSON body with the content-type and cache-disabling
// headers every endpoint of this API carries.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{"error": true, "message": message})
}
