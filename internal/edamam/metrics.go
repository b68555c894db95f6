package edamam

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_finder_edamam_requests_total",
			Help: "Total number of requests made to the Edamam API",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_finder_edamam_request_duration_seconds",
			Help:    "Edamam API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	throttleWaits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_finder_edamam_throttle_waits_total",
			Help: "Total number of outbound requests delayed by the client-side throttle",
		},
	)
)

const (
	outcomeOK          = "ok"
	outcomeHTTPError   = "http_error"
	outcomeBadResponse = "bad_response"
	outcomeTransport   = "transport_error"
)
