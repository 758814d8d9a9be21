package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musclejourney_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "musclejourney_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RelationshipTransitions counts relationship state changes by transition.
	RelationshipTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musclejourney_relationship_transitions_total",
		Help: "Total relationship state transitions by type",
	}, []string{"transition"})

	// EngagementOps counts like/unlike/comment operations by target and outcome.
	EngagementOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musclejourney_engagement_ops_total",
		Help: "Total engagement operations by operation, target type, and outcome",
	}, []string{"operation", "target_type", "outcome"})

	// FeedComposeLatency records end-to-end feed composition latency.
	FeedComposeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "musclejourney_feed_compose_latency_seconds",
		Help:    "Feed composition latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// Relationship transition labels.
const (
	TransitionRequested = "requested"
	TransitionAccepted  = "accepted"
	TransitionRejected  = "rejected"
	TransitionRemoved   = "removed"
)

// Engagement outcome labels. Idempotent repeats are recorded under their own
// label so mark/counter drift shows up on a dashboard.
const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
)

// RecordRelationshipTransition increments the transition counter.
func RecordRelationshipTransition(transition string) {
	RelationshipTransitions.WithLabelValues(transition).Inc()
}

// RecordEngagementOp increments the engagement counter for an operation.
func RecordEngagementOp(operation, targetType string, applied bool) {
	outcome := OutcomeNoop
	if applied {
		outcome = OutcomeApplied
	}
	EngagementOps.WithLabelValues(operation, targetType, outcome).Inc()
}

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct{}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics() *DatabaseMetrics {
	return &DatabaseMetrics{}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
