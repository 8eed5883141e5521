package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwapTransitionsTotal counts swap lifecycle transitions by event and outcome.
	SwapTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total number of swap lifecycle transitions by event and outcome",
	}, []string{"event", "outcome"})

	// RatingsRecordedTotal counts rating writes by operation.
	RatingsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_ratings_recorded_total",
		Help: "Total number of rating create and update operations",
	}, []string{"operation"})

	// NotificationsPublishedTotal counts notifications by type.
	NotificationsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_notifications_published_total",
		Help: "Total number of notifications published by type",
	}, []string{"type"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_websocket_backpressure_drops_total",
		Help: "Messages dropped because a websocket client's send buffer was full or closed",
	}, []string{"reason"})
)

// ObserveQuery records the latency of a database query started at start.
func ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
