package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventuras_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "code"},
	)

	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventuras_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	NotificationSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventuras_notification_sends_total",
			Help: "Total notification send attempts by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	ConcurrencyConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventuras_concurrency_conflicts_total",
			Help: "Total optimistic concurrency conflicts surfaced to callers",
		},
	)
)
