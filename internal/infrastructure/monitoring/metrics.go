// Package monitoring handles Prometheus metrics collection.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tastevine/v1/internal/domain/content"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	votesCastTotal     *prometheus.CounterVec
	votesRejectedTotal *prometheus.CounterVec
	recipesCreated     prometheus.Counter
	remediesCreated    prometheus.Counter
	usersRegistered    prometheus.Counter

	// AI metrics
	aiRequestsTotal   *prometheus.CounterVec
	aiRequestDuration *prometheus.HistogramVec
	aiParseFailures   *prometheus.CounterVec
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		votesCastTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "votes_cast_total",
				Help: "Total number of votes recorded in the ledger",
			},
			[]string{"kind", "vote"},
		),
		votesRejectedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "votes_rejected_total",
				Help: "Total number of rejected vote attempts",
			},
			[]string{"reason"},
		),
		recipesCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_created_total",
				Help: "Total number of community recipes created",
			},
		),
		remediesCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "remedies_created_total",
				Help: "Total number of remedies created",
			},
		),
		usersRegistered: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "users_registered_total",
				Help: "Total number of registered users",
			},
		),
		aiRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of generative model requests",
			},
			[]string{"operation", "status"},
		),
		aiRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "Generative model request duration in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"operation"},
		),
		aiParseFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_parse_failures_total",
				Help: "Total number of model responses rejected by the parser",
			},
			[]string{"operation", "reason"},
		),
	}
}

// RecordHTTPRequest records metrics for one HTTP request
func (m *MetricsCollector) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// VoteCast implements the vote ledger Recorder contract
func (m *MetricsCollector) VoteCast(kind content.Kind, vote content.VoteType) {
	m.votesCastTotal.WithLabelValues(string(kind), string(vote)).Inc()
}

// VoteRejected implements the vote ledger Recorder contract
func (m *MetricsCollector) VoteRejected(reason string) {
	m.votesRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordRecipeCreated increments the recipe counter
func (m *MetricsCollector) RecordRecipeCreated() { m.recipesCreated.Inc() }

// RecordRemedyCreated increments the remedy counter
func (m *MetricsCollector) RecordRemedyCreated() { m.remediesCreated.Inc() }

// RecordUserRegistered increments the user counter
func (m *MetricsCollector) RecordUserRegistered() { m.usersRegistered.Inc() }

// RecordAIRequest records one model request outcome
func (m *MetricsCollector) RecordAIRequest(operation, status string, duration time.Duration) {
	m.aiRequestsTotal.WithLabelValues(operation, status).Inc()
	m.aiRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAIParseFailure records one rejected model response
func (m *MetricsCollector) RecordAIParseFailure(operation, reason string) {
	m.aiParseFailures.WithLabelValues(operation, reason).Inc()
}

// Handler returns the Prometheus scrape endpoint
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
