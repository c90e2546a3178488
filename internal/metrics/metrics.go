package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SalesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_created_total",
			Help: "Total number of committed sales",
		},
	)

	CheckoutFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failures_total",
			Help: "Checkout attempts rejected or rolled back, by error kind",
		},
		[]string{"kind"},
	)
)
