package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analyzer_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analyzer_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// String analysis metrics
	StringsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analyzer_strings_created_total",
			Help: "Total number of analyzed strings stored",
		},
	)

	// Country cache metrics
	CountryRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_country_refreshes_total",
			Help: "Total number of country refreshes by trigger and result",
		},
		[]string{"trigger", "result"},
	)

	CountriesCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analyzer_countries_cached",
			Help: "Number of countries stored after the last refresh",
		},
	)

	// Upstream metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "analyzer_circuit_breaker_state",
			Help: "Circuit breaker state per upstream (0=closed, 1=half-open, 2=open)",
		},
		[]string{"upstream"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_upstream_requests_total",
			Help: "Total number of upstream requests by upstream and result",
		},
		[]string{"upstream", "result"},
	)
)
