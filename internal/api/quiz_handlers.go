package api

import (
	"net/http"
	"strings"

	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/services"
)

// handleQuestions serves GET /api/questions?age_group=&difficulty=&topics=&count=&seed=
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count, err := intQuery(r, "count", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	questions, err := s.QuizService.Questions(r.Context(), catalog.QuestionQuery{
		AgeGroup:   models.AgeGroup(q.Get("age_group")),
		Difficulty: models.Difficulty(strings.ToLower(q.Get("difficulty"))),
		Topics:     listQuery(r, "topics"),
		Count:      count,
		Seed:       q.Get("seed"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"questions": questions, "count": len(questions)})
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req services.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("quiz submitted: user_id=%s, answers=%d", req.Submission.UserID, len(req.Submission.Answers))

	report, err := s.QuizService.Submit(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}
