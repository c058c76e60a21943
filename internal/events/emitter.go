// Package events publishes intelligence events to downstream investigation
// tooling over NATS. Publishing is strictly best-effort: the pipeline never
// waits on or fails because of the event bus.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/honeynet-labs/agentic-honeypot/internal/model"
	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
	"github.com/honeynet-labs/agentic-honeypot/pkg/metrics"
)

const (
	SubjectScamDetected   = "honeypot.scam.detected"
	SubjectIntelExtracted = "honeypot.intel.extracted"
)

// ScamDetectedEvent is published the first time a conversation turns
// scam-positive.
type ScamDetectedEvent struct {
	ID             string             `json:"id"`
	ConversationID string             `json:"conversation_id"`
	Category       model.ScamCategory `json:"category"`
	Confidence     float64            `json:"confidence"`
	DetectedAt     time.Time          `json:"detected_at"`
}

// IntelExtractedEvent is published whenever a conversation yields new
// artifacts. It carries the cumulative intelligence for the conversation.
type IntelExtractedEvent struct {
	ID             string                      `json:"id"`
	ConversationID string                      `json:"conversation_id"`
	Intelligence   model.ExtractedIntelligence `json:"intelligence"`
	ExtractedAt    time.Time                   `json:"extracted_at"`
}

// Emitter publishes honeypot events.
type Emitter interface {
	ScamDetected(conversationID string, category model.ScamCategory, confidence float64)
	IntelExtracted(conversationID string, intel model.ExtractedIntelligence)
	Close()
}

// NoopEmitter is used when no event bus is configured.
type NoopEmitter struct{}

func (NoopEmitter) ScamDetected(string, model.ScamCategory, float64) {}

func (NoopEmitter) IntelExtracted(string, model.ExtractedIntelligence) {}

func (NoopEmitter) Close() {}

// NATSEmitter publishes events over a core NATS connection.
type NATSEmitter struct {
	conn   *nats.Conn
	logger *logger.Logger
}

// Connect establishes the NATS connection.
func Connect(url, token string, log *logger.Logger) (*NATSEmitter, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("event bus disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("event bus reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	return &NATSEmitter{conn: nc, logger: log}, nil
}

// ScamDetected publishes a detection event, fire-and-forget.
func (e *NATSEmitter) ScamDetected(conversationID string, category model.ScamCategory, confidence float64) {
	e.publish(SubjectScamDetected, ScamDetectedEvent{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Category:       category,
		Confidence:     confidence,
		DetectedAt:     time.Now(),
	})
}

// IntelExtracted publishes the conversation's cumulative intelligence.
func (e *NATSEmitter) IntelExtracted(conversationID string, intel model.ExtractedIntelligence) {
	e.publish(SubjectIntelExtracted, IntelExtractedEvent{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Intelligence:   intel,
		ExtractedAt:    time.Now(),
	})
}

func (e *NATSEmitter) publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err == nil {
		err = e.conn.Publish(subject, data)
	}
	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(subject, "error").Inc()
		e.logger.Warn("failed to publish event",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(subject, "ok").Inc()
}

// Close drains the connection.
func (e *NATSEmitter) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}

// IsConnected reports whether the emitter can currently publish.
func (e *NATSEmitter) IsConnected() bool {
	return e.conn != nil && e.conn.IsConnected()
}
