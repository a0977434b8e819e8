// Package metrics exposes pipeline and HTTP metrics in the Prometheus format
// on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

const namespace = "kpi"

type Metrics struct {
	registry *prometheus.Registry

	generationRuns     *prometheus.CounterVec
	generationDuration prometheus.Histogram
	skippedRecords     prometheus.Gauge
	lastSuccess        prometheus.Gauge

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generationRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_runs_total",
				Help:      "Generation runs by outcome.",
			},
			[]string{"status"},
		),
		generationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Wall time of generation runs.",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		skippedRecords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "generation_skipped_records",
				Help:      "Records dropped by the skip policy in the last run.",
			},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "generation_last_success_timestamp_seconds",
				Help:      "Unix time of the last successful run.",
			},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	m.registry.MustRegister(
		m.generationRuns,
		m.generationDuration,
		m.skippedRecords,
		m.lastSuccess,
		m.requestsTotal,
		m.requestDuration,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveGeneration records the outcome of one run.
func (m *Metrics) ObserveGeneration(status domain.GenerationStatus, duration time.Duration, skipped int) {
	m.generationRuns.WithLabelValues(string(status)).Inc()
	m.generationDuration.Observe(duration.Seconds())
	m.skippedRecords.Set(float64(skipped))
	if status == domain.GenerationSucceeded {
		m.lastSuccess.SetToCurrentTime()
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// WatchArchive publishes the number of archived periods, counted at scrape
// time.
func (m *Metrics) WatchArchive(count func() (int, error)) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "archived_periods",
			Help:      "Periods currently published in the archive.",
		},
		func() float64 {
			n, err := count()
			if err != nil {
				return -1
			}
			return float64(n)
		},
	))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
