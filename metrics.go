package serp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments a Client with prometheus collectors. A nil
// *Metrics disables instrumentation; all record methods are nil-safe.
type Metrics struct {
	AttemptsTotal      *prometheus.CounterVec
	AttemptDuration    *prometheus.HistogramVec
	RetriesTotal       prometheus.Counter
	RateLimitHitsTotal prometheus.Counter
	PagesStreamedTotal prometheus.Counter
}

// NewMetrics registers the client collectors with reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry; create at
// most one Metrics per registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serp_client_attempts_total",
				Help: "Total number of transport attempts by outcome",
			},
			[]string{"status"},
		),
		AttemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "serp_client_attempt_duration_seconds",
				Help:    "Transport attempt duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"status"},
		),
		RetriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "serp_client_retries_total",
				Help: "Total number of retries performed",
			},
		),
		RateLimitHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "serp_client_rate_limit_hits_total",
				Help: "Total number of 429 responses received",
			},
		),
		PagesStreamedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "serp_client_pages_streamed_total",
				Help: "Total number of result pages emitted by streams",
			},
		),
	}
}

func (m *Metrics) RecordAttempt(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.AttemptsTotal.WithLabelValues(status).Inc()
	m.AttemptDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *Metrics) RecordRetry() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

func (m *Metrics) RecordRateLimitHit() {
	if m == nil {
		return
	}
	m.RateLimitHitsTotal.Inc()
}

func (m *Metrics) RecordPage() {
	if m == nil {
		return
	}
	m.PagesStreamedTotal.Inc()
}
