package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	Redemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyalty_redemptions_total",
			Help: "Total number of benefit redemption attempts",
		},
		[]string{"result"},
	)

	PointsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_points_granted_total",
			Help: "Sum of points added through point grants",
		},
	)

	MembersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_members_created_total",
			Help: "Total number of registered members",
		},
	)

	AdviceFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyalty_chef_fallbacks_total",
			Help: "Total number of chef replies served from fallback text",
		},
		[]string{"entry"},
	)

	StoreConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyalty_store_conflicts_total",
			Help: "Total number of compare-and-swap conflicts per collection key",
		},
		[]string{"key"},
	)

	SeedFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyalty_seed_fallbacks_total",
			Help: "Total number of reads served from seed data after a decode failure",
		},
		[]string{"key"},
	)
)

// HTTP metrics
var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyalty_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loyalty_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
