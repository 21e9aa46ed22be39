package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the booking flow
type Metrics struct {
	SessionsCreated prometheus.Counter
	HoldBookings    prometheus.Counter
	BackendRequests *prometheus.CounterVec
	BackendRetries  prometheus.Counter
	BackendDuration prometheus.Histogram
	CacheHits       *prometheus.CounterVec
	CacheMisses     *prometheus.CounterVec
	SeatConflicts   prometheus.Counter
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "The total number of booking sessions created",
		}),
		HoldBookings: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hold_bookings_total",
			Help:      "The total number of hold bookings submitted",
		}),
		BackendRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "The total number of requests to the booking backend",
		}, []string{"operation", "outcome"}),
		BackendRetries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_retries_total",
			Help:      "The total number of retried backend requests",
		}),
		BackendDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Time taken by booking backend requests",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "The total number of request cache hits",
		}, []string{"cache"}),
		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "The total number of request cache misses",
		}, []string{"cache"}),
		SeatConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_conflicts_total",
			Help:      "The total number of seat drafts rejected due to occupancy",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
