package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ladle_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EngagementEvents counts broadcast engagement events by type.
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ladle_engagement_events_total",
		Help: "Total engagement events broadcast by type",
	}, []string{"event_type"})

	// CommentBacklogGap counts comment writes whose follow-up counter bump failed.
	CommentBacklogGap = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ladle_comment_counter_gap_total",
		Help: "Comments stored whose comment_count increment did not land",
	})
)

// TrackQuery returns a function that records query latency when called.
// Repositories use it as `defer TrackQuery("Create", "recipes")()`.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordEngagementEvent increments the engagement events counter for the event type.
func RecordEngagementEvent(eventType string) {
	EngagementEvents.WithLabelValues(eventType).Inc()
}
