package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type moduleMetrics struct {
	openSessions    prometheus.Gauge
	sessionsTotal   prometheus.Counter
	entriesTotal    *prometheus.CounterVec
	sessionDuration prometheus.Histogram
}

var (
	metricsOnce sync.Once
	metricsInst *moduleMetrics
)

func getMetrics() *moduleMetrics {
	metricsOnce.Do(func() {
		m := &moduleMetrics{
			openSessions: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "seslog_open_sessions",
					Help: "Current number of open session logs.",
				},
			),
			sessionsTotal: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "seslog_sessions_total",
					Help: "Total session logs started.",
				},
			),
			entriesTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "seslog_entries_total",
					Help: "Total entries written by category.",
				},
				[]string{"category"},
			),
			sessionDuration: prometheus.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "seslog_session_duration_seconds",
					Help:    "Session duration in seconds as recorded in the footer.",
					Buckets: prometheus.ExponentialBuckets(1, 4, 10),
				},
			),
		}

		prometheus.MustRegister(
			m.openSessions,
			m.sessionsTotal,
			m.entriesTotal,
			m.sessionDuration,
		)

		metricsInst = m
	})

	return metricsInst
}

// EnsureRegistered initializes and registers metrics the first time it is called.
func EnsureRegistered() {
	_ = getMetrics()
}

func MetricsHandler() http.Handler {
	EnsureRegistered()
	return promhttp.Handler()
}

func SessionOpened() {
	m := getMetrics()
	m.openSessions.Inc()
	m.sessionsTotal.Inc()
}

func SessionClosed(duration time.Duration) {
	m := getMetrics()
	m.openSessions.Dec()
	m.sessionDuration.Observe(duration.Seconds())
}

func EntryLogged(category string) {
	getMetrics().entriesTotal.WithLabelValues(category).Inc()
}
