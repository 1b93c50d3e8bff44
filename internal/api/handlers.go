package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/errors"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/services"
)

// maxBodyBytes caps request bodies; a full quiz submission is far smaller.
const maxBodyBytes = 1 << 20

// Pinger is satisfied by *sql.DB and *db.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	QuizService    services.QuizService
	LessonService  services.LessonService
	ReportService  services.ReportService
	ContentService services.ContentService
	Catalog        *catalog.Holder
	DB             Pinger
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}
