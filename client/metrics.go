package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "misfit_client",
			Name:      "requests_total",
			Help:      "Misfit API requests by resource and outcome.",
		},
		[]string{"resource", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "misfit_client",
			Name:      "request_duration_seconds",
			Help:      "Misfit API request latency, including body read.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource"},
	)
)

func observeRequest(resource, outcome string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(resource, outcome).Inc()
	requestDuration.WithLabelValues(resource).Observe(elapsed.Seconds())
}
