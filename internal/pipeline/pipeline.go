// Package pipeline wires one inbound message through detection, state
// update, engagement, and extraction.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/honeynet-labs/agentic-honeypot/internal/detector"
	"github.com/honeynet-labs/agentic-honeypot/internal/events"
	"github.com/honeynet-labs/agentic-honeypot/internal/model"
	"github.com/honeynet-labs/agentic-honeypot/internal/store"
	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
	"github.com/honeynet-labs/agentic-honeypot/pkg/metrics"
)

// Classifier scores one message for scam likelihood.
type Classifier interface {
	Classify(ctx context.Context, message string, history []model.HistoryMessage) detector.Verdict
}

// Extractor pulls artifacts out of raw text.
type Extractor interface {
	Extract(text string) model.ExtractedIntelligence
}

// Responder produces the decoy reply for scam-positive conversations.
type Responder interface {
	Reply(ctx context.Context, category model.ScamCategory, turnCount int, transcript []model.Turn) string
}

// Pipeline runs the per-request state machine. Every failure inside any
// component, including panics, is contained here and converted to the
// safe-default response; committed store mutations are retained.
type Pipeline struct {
	store      *store.Store
	classifier Classifier
	extractor  Extractor
	responder  Responder
	emitter    events.Emitter
	logger     *logger.Logger
	tracer     trace.Tracer
}

// New creates a pipeline.
func New(
	st *store.Store,
	classifier Classifier,
	extractor Extractor,
	responder Responder,
	emitter events.Emitter,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		store:      st,
		classifier: classifier,
		extractor:  extractor,
		responder:  responder,
		emitter:    emitter,
		logger:     log,
		tracer:     otel.Tracer("agentic-honeypot/pipeline"),
	}
}

// Process handles one inbound message end to end and always returns a
// well-formed response.
func (p *Pipeline) Process(ctx context.Context, req *model.HoneypotRequest) (resp model.HoneypotResponse) {
	bestTurnCount := 0

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panic contained",
				zap.String("conversation_id", req.ConversationID),
				zap.Any("panic", r),
			)
			metrics.PipelineFailuresTotal.Inc()
			resp = model.SafeDefaultResponse(bestTurnCount)
		}
	}()

	ctx, span := p.tracer.Start(ctx, "pipeline.process",
		trace.WithAttributes(attribute.String("conversation_id", req.ConversationID)),
	)
	defer span.End()

	prior := p.store.GetOrCreate(req.ConversationID)
	bestTurnCount = prior.TurnCount

	verdict := p.classifier.Classify(ctx, req.Message, req.History)

	intel := p.extractor.Extract(p.transcriptText(prior, req))

	// Commit the inbound turn, the sticky decision, and the intelligence in
	// one critical section.
	snap := p.store.Apply(req.ConversationID, func(st *model.ConversationState) {
		st.ScamDetected = st.ScamDetected || verdict.IsScam
		if st.ScamDetected && st.Category == model.CategoryNone {
			st.Category = verdict.Category
		}
		st.Append(model.NewTurn(model.RoleScammer, req.Message))
		st.Intelligence.Merge(intel)
	})
	bestTurnCount = snap.TurnCount

	if verdict.IsScam && !prior.ScamDetected {
		metrics.ScamDetectionsTotal.WithLabelValues(string(snap.Category)).Inc()
		p.emitter.ScamDetected(snap.ID, snap.Category, verdict.Confidence)
	}
	p.reportNewArtifacts(prior, snap)

	agentReply := ""
	if snap.ScamDetected {
		agentReply = p.responder.Reply(ctx, snap.Category, scammerTurns(snap.Turns), snap.Turns)
		if agentReply != "" {
			snap = p.store.Apply(req.ConversationID, func(st *model.ConversationState) {
				st.AgentActivated = true
				st.Append(model.NewTurn(model.RoleAgent, agentReply))
			})
			bestTurnCount = snap.TurnCount
		}
	}

	p.logger.Info("message processed",
		zap.String("conversation_id", snap.ID),
		zap.Bool("scam_detected", snap.ScamDetected),
		zap.Bool("agent_activated", snap.AgentActivated),
		zap.String("category", string(snap.Category)),
		zap.Float64("confidence", verdict.Confidence),
		zap.Int("turn_count", snap.TurnCount),
	)

	return model.HoneypotResponse{
		ScamDetected:   snap.ScamDetected,
		AgentActivated: snap.AgentActivated,
		AgentReply:     agentReply,
		EngagementMetrics: model.EngagementMetrics{
			TurnCount:          snap.TurnCount,
			EngagementDuration: formatDuration(snap.LastActivity.Sub(snap.CreatedAt).Seconds()),
		},
		ExtractedIntelligence: snap.Intelligence,
		Status:                model.StatusSuccess,
	}
}

// transcriptText assembles the full accumulated conversation text: stored
// turns, caller-supplied history, and the new message. Duplicate artifacts
// are harmless since intelligence merging deduplicates.
func (p *Pipeline) transcriptText(prior model.Snapshot, req *model.HoneypotRequest) string {
	var sb strings.Builder
	for _, t := range prior.Turns {
		sb.WriteString(t.Content)
		sb.WriteString("\n")
	}
	for _, h := range req.History {
		sb.WriteString(h.Content)
		sb.WriteString("\n")
	}
	sb.WriteString(req.Message)
	return sb.String()
}

func (p *Pipeline) reportNewArtifacts(prior, snap model.Snapshot) {
	newBank := len(snap.Intelligence.BankAccounts) - len(prior.Intelligence.BankAccounts)
	newUPI := len(snap.Intelligence.UPIIDs) - len(prior.Intelligence.UPIIDs)
	newURL := len(snap.Intelligence.PhishingURLs) - len(prior.Intelligence.PhishingURLs)
	if newBank <= 0 && newUPI <= 0 && newURL <= 0 {
		return
	}
	metrics.RecordArtifacts(newBank, newUPI, newURL)
	p.emitter.IntelExtracted(snap.ID, snap.Intelligence)
}

// scammerTurns is the engagement turn index: how many scammer messages the
// conversation has received so far.
func scammerTurns(turns []model.Turn) int {
	n := 0
	for _, t := range turns {
		if t.Role == model.RoleScammer {
			n++
		}
	}
	return n
}

// formatDuration renders an engagement duration as "45s", "1m 30s", "1h 2m".
func formatDuration(seconds float64) string {
	s := int(seconds)
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		if s%60 == 0 {
			return fmt.Sprintf("%dm", s/60)
		}
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	default:
		if (s%3600)/60 == 0 {
			return fmt.Sprintf("%dh", s/3600)
		}
		return fmt.Sprintf("%dh %dm", s/3600, (s%3600)/60)
	}
}
