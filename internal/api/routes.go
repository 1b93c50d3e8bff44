package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/brainboost/internal/metrics"
)

const requestTimeout = 15 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/questions", s.handleQuestions)
		r.Get("/catalog/stats", s.handleCatalogStats)
		r.Post("/quiz/submit", s.handleSubmitQuiz)
		r.Post("/lessons/recommend", s.handleRecommendLessons)
		r.Post("/lessons/sequence", s.handleSequenceLessons)

		r.Get("/reports/{id}", s.handleGetReport)
		r.Get("/reports/{id}/insights", s.handleReportInsights)
		r.Get("/reports/{id}/certificate", s.handleReportCertificate)
		r.Get("/reports/{id}/summary", s.handleReportSummary)

		r.Get("/users/{userID}/reports", s.handleUserReports)
		r.Get("/users/{userID}/summary", s.handleUserSummary)
		r.Get("/users/{userID}/progress", s.handleUserProgress)
	})
	return r
}
