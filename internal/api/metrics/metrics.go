// Package metrics defines and registers all custom Prometheus metrics for
// the support backend. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "support"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts by outcome.
// Label:
//   - result: "success", "duplicate_email", or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── AI stream metrics ─────────────────────────────────────────────────────────

// AIStreamsTotal counts AI response streams by terminal state.
// Label:
//   - result: "completed", "rejected", "failed", or "cancelled"
var AIStreamsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_streams_total",
		Help:      "Total number of AI response streams, by terminal state.",
	},
	[]string{"result"},
)

// AIStreamChunksTotal counts chunks forwarded to clients.
var AIStreamChunksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_stream_chunks_total",
		Help:      "Total number of chunks forwarded to streaming clients.",
	},
)

// AIStreamDuration measures how long a stream stays open, first byte to
// close. Unbounded streams motivate the wide upper buckets.
var AIStreamDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_stream_duration_seconds",
		Help:      "Duration of AI response streams from validation to close.",
		Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	},
)
