package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HttpErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRateLimitRejectionsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Total number of HTTP requests rejected due to rate limiting",
	},
)

// LifecycleTransitionsTotal counts rows moved by archive, stop, restore and
// delete operations.
var LifecycleTransitionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lifecycle_transitions_total",
		Help: "Total number of records changed by lifecycle operations",
	},
	[]string{"entity", "action"},
)

var LookupCacheTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lookup_cache_total",
		Help: "Lookup cache reads by result (hit/miss/error)",
	},
	[]string{"kind", "result"},
)

var EventPublishFailureTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "event_publish_failure_total",
		Help: "Total number of events that could not be published",
	},
	[]string{"channel"},
)

var registerOnce sync.Once

// InitAPIMetrics registers every collector with the default registry. Safe to
// call more than once.
func InitAPIMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HttpRequestsTotal)
		prometheus.MustRegister(HttpRequestDuration)
		prometheus.MustRegister(HttpErrorsTotal)
		prometheus.MustRegister(HttpRateLimitRejectionsTotal)
		prometheus.MustRegister(LifecycleTransitionsTotal)
		prometheus.MustRegister(LookupCacheTotal)
		prometheus.MustRegister(EventPublishFailureTotal)
	})
}
