package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for flightwatch
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Provider Metrics
	ProviderRequestDuration *prometheus.HistogramVec
	ProviderErrorsTotal     *prometheus.CounterVec

	// Tracking Metrics
	PositionPollsTotal     *prometheus.CounterVec
	TrackingSessionsActive prometheus.Gauge
	NotificationsSentTotal prometheus.Counter
}

// Poll results recorded on PositionPollsTotal
const (
	PollResultUpdated = "updated"
	PollResultFailed  = "failed"
	PollResultPaused  = "paused"
)

// NewMetricsRegistry initializes all metrics against reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightwatch_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightwatch_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightwatch_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightwatch_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightwatch_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Provider Metrics
		ProviderRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightwatch_provider_request_duration_seconds",
				Help:    "Flight data provider call latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		ProviderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightwatch_provider_errors_total",
				Help: "Flight data provider failures by operation and error code",
			},
			[]string{"operation", "code"},
		),

		// Tracking Metrics
		PositionPollsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightwatch_position_polls_total",
				Help: "Position poll ticks by result",
			},
			[]string{"result"},
		),
		TrackingSessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flightwatch_tracking_sessions_active",
				Help: "Current number of open tracking sessions",
			},
		),
		NotificationsSentTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flightwatch_notifications_sent_total",
				Help: "Total flight notifications stored and delivered",
			},
		),
	}
}

// ObservePoll records a poll tick result. Safe on a nil registry.
func (m *MetricsRegistry) ObservePoll(result string) {
	if m == nil {
		return
	}
	m.PositionPollsTotal.WithLabelValues(result).Inc()
}

// ObserveCache records a cache lookup for a key pattern. Safe on a nil registry.
func (m *MetricsRegistry) ObserveCache(pattern string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

// SetActiveSessions publishes the open tracking session count.
func (m *MetricsRegistry) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.TrackingSessionsActive.Set(float64(n))
}

// NotificationSent counts one stored notification.
func (m *MetricsRegistry) NotificationSent() {
	if m == nil {
		return
	}
	m.NotificationsSentTotal.Inc()
}
