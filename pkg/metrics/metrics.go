// Package metrics holds prometheus collectors shared across the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// RequestDuration observes served HTTP requests by method, route and status.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
	Name:    "http_request_duration_seconds",
	Help:    "Duration of HTTP requests served by the launch page.",
	Buckets: DefaultBuckets,
}, []string{"method", "route", "status"})
