package api

import (
	"net/http"

	"github.com/vytor/brainboost/internal/recommend"
)

func (s *Server) handleRecommendLessons(w http.ResponseWriter, r *http.Request) {
	var criteria recommend.Criteria
	if err := decodeJSON(w, r, &criteria); err != nil {
		handleError(w, r, err)
		return
	}

	recs, err := s.LessonService.Recommend(r.Context(), criteria)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"recommendations": recs})
}

func (s *Server) handleSequenceLessons(w http.ResponseWriter, r *http.Request) {
	var req recommend.SequenceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lessons, err := s.LessonService.Sequence(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"lessons": lessons})
}

func (s *Server) handleCatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ContentService.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
