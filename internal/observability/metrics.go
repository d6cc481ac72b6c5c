package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsPublishedTotal counts posts that transitioned to published.
	PostsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_published_total",
		Help: "Total number of posts published",
	})

	// LikesToggledTotal counts like toggles by resulting state.
	LikesToggledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_likes_toggled_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"state"})

	// CommentsCreatedTotal counts comments accepted onto published posts.
	CommentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_created_total",
		Help: "Total number of comments created",
	})

	// CacheRequestsTotal counts cache-aside lookups by key prefix and outcome.
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_requests_total",
		Help: "Total cache-aside lookups by key prefix and outcome",
	}, []string{"prefix", "outcome"})

	// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
	RateLimitRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_ratelimit_rejections_total",
		Help: "Total requests rejected by the rate limiter",
	}, []string{"scope"})
)

// Cache lookup outcomes for CacheRequestsTotal.
const (
	CacheOutcomeHit   = "hit"
	CacheOutcomeMiss  = "miss"
	CacheOutcomeError = "error"
)

// RecordCacheLookup increments the cache lookup counter.
func RecordCacheLookup(prefix, outcome string) {
	CacheRequestsTotal.WithLabelValues(prefix, outcome).Inc()
}

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
