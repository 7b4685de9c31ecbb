// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups every collector of the service on its own registry
type Metrics struct {
	Registry *prometheus.Registry

	GatewayCalls    *prometheus.CounterVec
	UpstreamUp      prometheus.Gauge
	FavoritesWrites *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		GatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moviedeck",
			Name:      "gateway_calls_total",
			Help:      "Metadata gateway calls by operation and serving source.",
		}, []string{"operation", "source"}),
		UpstreamUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "moviedeck",
			Name:      "upstream_up",
			Help:      "1 when the last health check of the TMDB API succeeded.",
		}),
		FavoritesWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moviedeck",
			Name:      "favorites_writes_total",
			Help:      "Favorites persistence attempts by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moviedeck",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "moviedeck",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GatewayCalls,
		m.UpstreamUp,
		m.FavoritesWrites,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}
