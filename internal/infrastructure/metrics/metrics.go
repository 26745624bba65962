package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatterbot",
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatterbot",
			Subsystem: "server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Provider calls
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatterbot",
			Subsystem: "server",
			Name:      "provider_calls_total",
			Help:      "Total generation and summarization calls",
		},
		[]string{"operation", "outcome"},
	)

	TokensPromptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatterbot",
			Subsystem: "server",
			Name:      "tokens_prompt_total",
			Help:      "Total prompt tokens consumed",
		},
		[]string{"model"},
	)

	TokensCompletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatterbot",
			Subsystem: "server",
			Name:      "tokens_completion_total",
			Help:      "Total completion tokens generated",
		},
		[]string{"model"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatterbot",
			Subsystem: "server",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	// Attachments
	AttachmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatterbot",
			Subsystem: "server",
			Name:      "attachments_total",
			Help:      "Total uploaded attachments by kind",
		},
		[]string{"kind"},
	)
)

// RecordRequest records one completed HTTP request.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordProviderCall records the outcome of one provider call.
func RecordProviderCall(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ProviderCallsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordTokenUsage records token counts reported by the provider.
func RecordTokenUsage(model string, promptTokens, completionTokens int64) {
	if promptTokens > 0 {
		TokensPromptTotal.WithLabelValues(model).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		TokensCompletionTotal.WithLabelValues(model).Add(float64(completionTokens))
	}
}
