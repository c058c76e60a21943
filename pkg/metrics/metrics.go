// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "honeypot_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ScamDetectionsTotal tracks scam-positive classifications by category.
	ScamDetectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_scam_detections_total",
			Help: "Total scam-positive classifications",
		},
		[]string{"category"},
	)

	// AgentRepliesTotal tracks decoy replies by generation source.
	AgentRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_agent_replies_total",
			Help: "Total decoy replies produced",
		},
		[]string{"source"},
	)

	// IntelligenceArtifactsTotal tracks newly extracted artifacts by kind.
	IntelligenceArtifactsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_intelligence_artifacts_total",
			Help: "Total extracted intelligence artifacts",
		},
		[]string{"kind"},
	)

	// ConversationsActive tracks conversations held in the store.
	ConversationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "honeypot_conversations_active",
			Help: "Number of conversations in the store",
		},
	)

	// PipelineFailuresTotal tracks requests that degraded to the safe default.
	PipelineFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "honeypot_pipeline_failures_total",
			Help: "Requests answered with the safe-default error payload",
		},
	)

	// LLMCallDuration tracks optional LLM enhancement call duration.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "honeypot_llm_call_duration_seconds",
			Help:    "LLM enhancement call duration",
			Buckets: []float64{.1, .25, .5, 1, 2, 3, 5, 8},
		},
		[]string{"operation", "status"},
	)

	// EventsPublishedTotal tracks intelligence events published to NATS.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_events_published_total",
			Help: "Total events published to the event bus",
		},
		[]string{"subject", "status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMCall records a single LLM enhancement call.
func RecordLLMCall(operation, status string, duration float64) {
	LLMCallDuration.WithLabelValues(operation, status).Observe(duration)
}

// RecordArtifacts records newly collected intelligence artifacts.
func RecordArtifacts(bankAccounts, upiIDs, phishingURLs int) {
	if bankAccounts > 0 {
		IntelligenceArtifactsTotal.WithLabelValues("bank_account").Add(float64(bankAccounts))
	}
	if upiIDs > 0 {
		IntelligenceArtifactsTotal.WithLabelValues("upi_id").Add(float64(upiIDs))
	}
	if phishingURLs > 0 {
		IntelligenceArtifactsTotal.WithLabelValues("phishing_url").Add(float64(phishingURLs))
	}
}
