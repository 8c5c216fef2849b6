package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat assistant metrics
var (
	// Messages handled, by classified intent
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobportal",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat messages handled by intent",
		},
		[]string{"intent"},
	)

	// Replies that used the fixed sentence instead of the phrase generator
	PhraseFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobportal",
			Subsystem: "chat",
			Name:      "phrase_fallback_total",
			Help:      "Total replies that fell back to the fixed sentence",
		},
	)

	JobLookupErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobportal",
			Subsystem: "chat",
			Name:      "job_lookup_errors_total",
			Help:      "Total job lookup failures",
		},
	)

	// MCP tool calls
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobportal",
			Subsystem: "mcp",
			Name:      "tool_calls_total",
			Help:      "Total MCP tool calls",
		},
		[]string{"tool", "status"},
	)

	NotificationsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobportal",
			Subsystem: "notify",
			Name:      "dropped_total",
			Help:      "Total notifications dropped because the subscriber was not reading",
		},
	)
)
