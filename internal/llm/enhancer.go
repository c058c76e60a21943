package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeynet-labs/agentic-honeypot/internal/model"
	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
	"github.com/honeynet-labs/agentic-honeypot/pkg/metrics"
)

// Enhancer is the optional language-model capability consumed by the
// detector and the engagement agent. Implementations are best-effort: any
// failure means the caller keeps its deterministic result. The no-op
// implementation is selected at startup when no provider is configured, so
// call sites never branch on availability.
type Enhancer interface {
	// ClassifyAmbiguous gives a second opinion on a message whose keyword
	// score landed in the ambiguous band.
	ClassifyAmbiguous(ctx context.Context, message string, history []model.HistoryMessage) (bool, error)

	// GenerateReply produces a context-aware decoy reply.
	GenerateReply(ctx context.Context, category model.ScamCategory, turnCount int, transcript []model.Turn) (string, error)
}

// NoopEnhancer is the null implementation used when no LLM is configured.
type NoopEnhancer struct{}

func (NoopEnhancer) ClassifyAmbiguous(context.Context, string, []model.HistoryMessage) (bool, error) {
	return false, ErrUnavailable
}

func (NoopEnhancer) GenerateReply(context.Context, model.ScamCategory, int, []model.Turn) (string, error) {
	return "", ErrUnavailable
}

const classifySystemPrompt = "You are a scam detection expert. " +
	"Respond with exactly one word: YES or NO."

const replySystemPrompt = `You are playing a potential scam victim keeping a scammer talking.
Rules:
1. Act confused, concerned, or cooperative depending on the stage of the conversation
2. Ask clarifying questions about payment methods, account details, or verification steps
3. Never reveal you know it is a scam or that you are automated
4. Never invent account numbers, payment handles, or links of your own
5. Keep the reply to one or two short sentences`

// ClientEnhancer implements Enhancer on top of a provider Client. Every call
// is bounded by a timeout.
type ClientEnhancer struct {
	client  Client
	timeout time.Duration
	logger  *logger.Logger
}

// NewClientEnhancer wraps a provider client.
func NewClientEnhancer(client Client, timeout time.Duration, log *logger.Logger) *ClientEnhancer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ClientEnhancer{client: client, timeout: timeout, logger: log}
}

// ClassifyAmbiguous asks the model for a YES/NO verdict on the message.
func (e *ClientEnhancer) ClassifyAmbiguous(ctx context.Context, message string, history []model.HistoryMessage) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var sb strings.Builder
	for _, msg := range lastHistory(history, 5) {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
	}

	prompt := fmt.Sprintf(
		"Conversation history:\n%s\nCurrent message: %s\n\nIs this message a scam attempt? Answer YES or NO.",
		sb.String(), message,
	)

	start := time.Now()
	resp, err := e.client.Complete(ctx, &CompletionRequest{
		System:    classifySystemPrompt,
		Messages:  []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 8,
	})
	if err != nil {
		metrics.RecordLLMCall("classify", "error", time.Since(start).Seconds())
		return false, err
	}
	metrics.RecordLLMCall("classify", "ok", time.Since(start).Seconds())

	return strings.Contains(strings.ToUpper(resp.Content), "YES"), nil
}

// GenerateReply asks the model for a decoy reply in the victim persona.
func (e *ClientEnhancer) GenerateReply(ctx context.Context, category model.ScamCategory, turnCount int, transcript []model.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var sb strings.Builder
	for _, t := range lastTurns(transcript, 6) {
		fmt.Fprintf(&sb, "%s: %s\n", t.Role, t.Content)
	}

	prompt := fmt.Sprintf(
		"Conversation so far:\n%s\nScam type: %s. Turn %d.\n\nReply as the victim. Early turns show concern; later turns ask for specific payment or verification details.",
		sb.String(), category, turnCount,
	)

	start := time.Now()
	resp, err := e.client.Complete(ctx, &CompletionRequest{
		System:      replySystemPrompt,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   120,
		Temperature: 0.8,
	})
	if err != nil {
		metrics.RecordLLMCall("reply", "error", time.Since(start).Seconds())
		return "", err
	}
	metrics.RecordLLMCall("reply", "ok", time.Since(start).Seconds())

	return strings.TrimSpace(resp.Content), nil
}

func lastHistory(history []model.HistoryMessage, n int) []model.HistoryMessage {
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

func lastTurns(turns []model.Turn, n int) []model.Turn {
	if len(turns) > n {
		return turns[len(turns)-n:]
	}
	return turns
}
