package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapplot_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mapplot_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"method", "route", "status"},
	)

	renderDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mapplot_render_duration_seconds",
			Help:    "Time spent rendering and encoding maps.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"provider", "format"},
	)

	renderCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapplot_render_cache_results_total",
			Help: "Rendered image cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

func observeHTTP(method, route string, status int, seconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(seconds)
}

func observeRender(provider, format string, seconds float64) {
	renderDurationSeconds.WithLabelValues(provider, format).Observe(seconds)
}

func incCache(outcome string) {
	renderCacheResults.WithLabelValues(outcome).Inc()
}
