package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "food_support"

var (
	IntentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "intent_total",
			Help:      "Classified queries by intent and deciding rule.",
		},
		[]string{"intent", "rule"},
	)

	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tools",
			Name:      "invocations_total",
			Help:      "Tool invocations by tool name and outcome.",
		},
		[]string{"tool", "outcome"},
	)

	DispatchIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dispatcher",
			Name:      "iterations",
			Help:      "Reasoning iterations per dispatch.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 7},
		},
	)

	DispatchOutcomeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatcher",
			Name:      "outcome_total",
			Help:      "Dispatch results: final, terminal, bound or apology.",
		},
		[]string{"outcome"},
	)

	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "chat_requests_total",
			Help:      "Chat requests by HTTP status code.",
		},
		[]string{"code"},
	)

	ChatRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "chat_request_duration_seconds",
			Help:      "Latency of chat requests.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Tool invocation outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeMalformed = "malformed"
	OutcomeUnknown   = "unknown"
	OutcomeError     = "error"
)
