package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	httpRequestsTotal       *prometheus.CounterVec
	httpLatencySeconds      *prometheus.HistogramVec
	httpErrorsTotal         *prometheus.CounterVec
	quizSubmissionsTotal    *prometheus.CounterVec
	quizScoreRatio          prometheus.Histogram
	quizValidationFailTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quizhub_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quizhub_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quizhub_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		quizSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Graded quiz submissions by outcome (perfect, partial, zero).",
		}, []string{"outcome"})

		quizScoreRatio = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quiz_score_ratio",
			Help:    "Distribution of score / total possible for graded submissions.",
			Buckets: []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1},
		})

		quizValidationFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_validation_failures_total",
			Help: "Quiz drafts rejected by the authoring validator.",
		}, []string{"operation"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			quizSubmissionsTotal,
			quizScoreRatio,
			quizValidationFailTotal,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the error response counter.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// QuizSubmissions exposes the graded submission counter.
func QuizSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return quizSubmissionsTotal
}

// QuizScoreRatio exposes the score ratio histogram.
func QuizScoreRatio() prometheus.Histogram {
	RegisterMetrics()
	return quizScoreRatio
}

// QuizValidationFailures exposes the rejected draft counter.
func QuizValidationFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return quizValidationFailTotal
}

// SubmissionOutcome buckets a score for the submissions counter.
func SubmissionOutcome(score, total int) string {
	switch {
	case total > 0 && score >= total:
		return "perfect"
	case score > 0:
		return "partial"
	default:
		return "zero"
	}
}
