package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feasibility",
			Subsystem: "chat_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "feasibility",
			Subsystem: "chat_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Safety filter trips by category
	FilteredMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feasibility",
			Subsystem: "chat_api",
			Name:      "filtered_messages_total",
			Help:      "Messages blocked by the safety filter",
		},
		[]string{"category"},
	)

	// Admission control rejections
	RateLimitRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "feasibility",
			Subsystem: "chat_api",
			Name:      "rate_limit_rejections_total",
			Help:      "Requests rejected by the rate limiter",
		},
	)

	// Upstream Assistants API calls
	AssistantCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feasibility",
			Subsystem: "chat_api",
			Name:      "assistant_calls_total",
			Help:      "Total Assistants API calls",
		},
		[]string{"operation", "status"},
	)

	// Poll attempts per run
	RunPollAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "feasibility",
			Subsystem: "chat_api",
			Name:      "run_poll_attempts",
			Help:      "Number of status polls per assistant run",
			Buckets:   []float64{1, 2, 3, 5, 10, 15, 20, 30},
		},
	)

	// Run outcomes (completed, failed, expired, cancelled, timeout)
	RunOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feasibility",
			Subsystem: "chat_api",
			Name:      "run_outcomes_total",
			Help:      "Terminal outcomes of assistant runs",
		},
		[]string{"outcome"},
	)
)
