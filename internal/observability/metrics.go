package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce     sync.Once
	requestsTotal    *prometheus.CounterVec
	latencySeconds   *prometheus.HistogramVec
	errorsTotal      *prometheus.CounterVec
	evaluationsTotal prometheus.Counter
	evaluationScores prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qualityhub_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qualityhub_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qualityhub_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		evaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qualityhub_evaluations_created_total",
			Help: "Total number of call evaluations created.",
		})

		evaluationScores = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qualityhub_evaluation_score",
			Help:    "Distribution of normalized evaluation scores.",
			Buckets: []float64{20, 40, 50, 60, 70, 80, 90, 95, 100},
		})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, evaluationsTotal, evaluationScores)
	})
}

// Requests exposes the counter for served requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the request latency histogram.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// EvaluationCreated records one created evaluation and its score.
func EvaluationCreated(score float64) {
	RegisterMetrics()
	evaluationsTotal.Inc()
	evaluationScores.Observe(score)
}
