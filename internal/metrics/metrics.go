// Package metrics exposes Prometheus collectors for the URL checker.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checksTotal            *prometheus.CounterVec
	attemptsTotal          *prometheus.CounterVec
	requestDurationSeconds prometheus.Histogram
	activeChecks           prometheus.Gauge

	once sync.Once
)

// Init registers the collectors with the default registry. It is safe to
// call multiple times; callers that never Init get no-op recording.
func Init() {
	once.Do(func() {
		checksTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urlcheck_checks_total",
				Help: "Total URL checks completed, labeled by terminal result.",
			},
			[]string{"result"},
		)

		attemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urlcheck_attempts_total",
				Help: "Total HTTP attempts issued, labeled by attempt result.",
			},
			[]string{"result"},
		)

		requestDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "urlcheck_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		)

		activeChecks = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "urlcheck_active_checks",
				Help: "Number of checks currently holding a concurrency permit.",
			},
		)
	})
}

// IncCheck records one completed check by terminal result (ok/error/invalid).
func IncCheck(result string) {
	if checksTotal == nil {
		return
	}
	checksTotal.WithLabelValues(result).Inc()
}

// IncAttempt records one HTTP attempt by result (success/retryable/error).
func IncAttempt(result string) {
	if attemptsTotal == nil {
		return
	}
	attemptsTotal.WithLabelValues(result).Inc()
}

// ObserveRequestDuration records the latency of one HTTP attempt.
func ObserveRequestDuration(d time.Duration) {
	if requestDurationSeconds == nil {
		return
	}
	requestDurationSeconds.Observe(d.Seconds())
}

// IncActiveChecks marks a check as in flight.
func IncActiveChecks() {
	if activeChecks == nil {
		return
	}
	activeChecks.Inc()
}

// DecActiveChecks marks a check as done.
func DecActiveChecks() {
	if activeChecks == nil {
		return
	}
	activeChecks.Dec()
}
