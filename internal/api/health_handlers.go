package api

import (
	"net/http"

	"github.com/vytor/brainboost/internal/logger"
)

type readiness struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Catalog  string `json:"catalog"`
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports 503 until the database answers and the catalog is loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	out := readiness{Status: "ready", Database: "ok", Catalog: "ok"}
	status := http.StatusOK

	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			log.Warn("readiness check failed - database: %v", err)
			out.Database = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	if s.Catalog == nil || !s.Catalog.Ready() {
		out.Catalog = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if status != http.StatusOK {
		out.Status = "not ready"
	}

	writeJSON(w, r, status, out)
}
