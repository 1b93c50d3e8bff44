package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every brainboost collector plus the Go and process collectors.
var Registry = prometheus.NewRegistry()

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brainboost_submissions_total",
			Help: "Scored quiz submissions by learner category",
		},
		[]string{"category"},
	)

	CompositeScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brainboost_composite_score",
			Help:    "Distribution of composite scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	UnmatchedAnswers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "brainboost_unmatched_answers_total",
			Help: "Answers referencing questions missing from the catalog",
		},
	)

	JobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brainboost_jobs_total",
			Help: "Background jobs by name and outcome",
		},
		[]string{"job", "status"},
	)

	JobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brainboost_job_duration_seconds",
			Help:    "Duration of background jobs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)
)

var initOnce sync.Once

// Init registers the collectors; safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			RequestCounter,
			RequestDuration,
			SubmissionsTotal,
			CompositeScore,
			UnmatchedAnswers,
			JobsTotal,
			JobDuration,
		)
	})
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	Init()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// Middleware records request count and latency keyed by the matched chi route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

// ObserveSubmission records one scored submission.
func ObserveSubmission(category string, composite float64, unmatched int) {
	SubmissionsTotal.WithLabelValues(category).Inc()
	CompositeScore.Observe(composite)
	if unmatched > 0 {
		UnmatchedAnswers.Add(float64(unmatched))
	}
}

// ObserveJob matches worker.Observer.
func ObserveJob(job string, took time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	JobsTotal.WithLabelValues(job, status).Inc()
	JobDuration.WithLabelValues(job).Observe(took.Seconds())
}
