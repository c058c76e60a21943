package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honeynet-labs/agentic-honeypot/internal/agent"
	"github.com/honeynet-labs/agentic-honeypot/internal/detector"
	"github.com/honeynet-labs/agentic-honeypot/internal/events"
	"github.com/honeynet-labs/agentic-honeypot/internal/extractor"
	"github.com/honeynet-labs/agentic-honeypot/internal/llm"
	"github.com/honeynet-labs/agentic-honeypot/internal/model"
	"github.com/honeynet-labs/agentic-honeypot/internal/store"
	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewNop()
}

// newPipeline wires real components with the no-op LLM enhancer.
func newPipeline() *Pipeline {
	log := testLogger()
	ext := extractor.New()
	det := detector.New(ext, llm.NoopEnhancer{}, log)
	eng := agent.New(llm.NoopEnhancer{}, ext, log)
	return New(store.New(), det, ext, eng, events.NoopEmitter{}, log)
}

func process(p *Pipeline, conversationID, message string) model.HoneypotResponse {
	return p.Process(context.Background(), &model.HoneypotRequest{
		ConversationID: conversationID,
		Message:        message,
	})
}

func TestScamMessageActivatesAgent(t *testing.T) {
	p := newPipeline()

	resp := process(p, "t1", "Your account is blocked. Send OTP immediately.")

	require.True(t, resp.ScamDetected)
	require.True(t, resp.AgentActivated)
	require.NotEmpty(t, resp.AgentReply)
	require.Equal(t, 2, resp.EngagementMetrics.TurnCount)
	require.Empty(t, resp.ExtractedIntelligence.BankAccounts)
	require.Empty(t, resp.ExtractedIntelligence.UPIIDs)
	require.Empty(t, resp.ExtractedIntelligence.PhishingURLs)
	require.Equal(t, model.StatusSuccess, resp.Status)
}

func TestBankAccountExtraction(t *testing.T) {
	p := newPipeline()

	resp := process(p, "t2", "Transfer to 1234567890 or account will be deleted")
	require.Equal(t, []string{"1234567890"}, resp.ExtractedIntelligence.BankAccounts)
}

func TestUPIExtraction(t *testing.T) {
	p := newPipeline()

	resp := process(p, "t3", "Send payment to scammer@paytm")
	require.Equal(t, []string{"scammer@paytm"}, resp.ExtractedIntelligence.UPIIDs)
}

func TestPhishingURLExtraction(t *testing.T) {
	p := newPipeline()

	resp := process(p, "t4", "Click here to verify: http://fake-bank.com")
	require.Equal(t, []string{"http://fake-bank.com"}, resp.ExtractedIntelligence.PhishingURLs)
}

func TestBenignMessage(t *testing.T) {
	p := newPipeline()

	resp := process(p, "t5", "Hi, how are you?")

	require.False(t, resp.ScamDetected)
	require.False(t, resp.AgentActivated)
	require.Empty(t, resp.AgentReply)
	require.Equal(t, 1, resp.EngagementMetrics.TurnCount)
	require.Empty(t, resp.ExtractedIntelligence.BankAccounts)
	require.Empty(t, resp.ExtractedIntelligence.UPIIDs)
	require.Empty(t, resp.ExtractedIntelligence.PhishingURLs)
	require.Equal(t, model.StatusSuccess, resp.Status)
}

func TestScamDecisionIsSticky(t *testing.T) {
	p := newPipeline()

	first := process(p, "sticky", "Your account is blocked. Send OTP immediately.")
	require.True(t, first.ScamDetected)

	// A completely benign follow-up stays scam-positive.
	second := process(p, "sticky", "Nice weather today, right?")
	require.True(t, second.ScamDetected)
	require.True(t, second.AgentActivated)
	require.NotEmpty(t, second.AgentReply)
}

func TestIntelligenceIsMonotone(t *testing.T) {
	p := newPipeline()

	first := process(p, "mono", "Transfer to 1234567890 now, account blocked")
	require.Equal(t, []string{"1234567890"}, first.ExtractedIntelligence.BankAccounts)

	second := process(p, "mono", "Also pay fraud@ybl urgently")
	require.Equal(t, []string{"1234567890"}, second.ExtractedIntelligence.BankAccounts)
	require.Equal(t, []string{"fraud@ybl"}, second.ExtractedIntelligence.UPIIDs)

	// Repeating the same artifact does not grow the set.
	third := process(p, "mono", "I said transfer to 1234567890")
	require.Equal(t, []string{"1234567890"}, third.ExtractedIntelligence.BankAccounts)
	require.Equal(t, []string{"fraud@ybl"}, third.ExtractedIntelligence.UPIIDs)
}

func TestHistoryIsScannedForArtifacts(t *testing.T) {
	p := newPipeline()

	resp := p.Process(context.Background(), &model.HoneypotRequest{
		ConversationID: "hist",
		Message:        "Did you send it yet?",
		History: []model.HistoryMessage{
			{Role: "scammer", Content: "Pay to A/C 987654321012 immediately"},
			{Role: "user", Content: "Which account?"},
		},
	})

	require.Equal(t, []string{"987654321012"}, resp.ExtractedIntelligence.BankAccounts)
}

func TestConcurrentRequestsLoseNoTurns(t *testing.T) {
	p := newPipeline()
	const n = 32

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			process(p, "race", fmt.Sprintf("hello number %d", i))
		}(i)
	}
	wg.Wait()

	resp := process(p, "race", "one more")
	require.Equal(t, n+1, resp.EngagementMetrics.TurnCount)
}

// panicClassifier simulates an unexpected component failure.
type panicClassifier struct{}

func (panicClassifier) Classify(context.Context, string, []model.HistoryMessage) detector.Verdict {
	panic("classifier exploded")
}

func TestComponentPanicYieldsSafeDefault(t *testing.T) {
	log := testLogger()
	ext := extractor.New()
	eng := agent.New(llm.NoopEnhancer{}, ext, log)
	p := New(store.New(), panicClassifier{}, ext, eng, events.NoopEmitter{}, log)

	resp := process(p, "boom", "Your account is blocked. Send OTP immediately.")

	require.Equal(t, model.StatusError, resp.Status)
	require.False(t, resp.ScamDetected)
	require.False(t, resp.AgentActivated)
	require.Empty(t, resp.AgentReply)
	require.NotNil(t, resp.ExtractedIntelligence.BankAccounts)
	require.NotNil(t, resp.ExtractedIntelligence.UPIIDs)
	require.NotNil(t, resp.ExtractedIntelligence.PhishingURLs)
}

func TestSafeDefaultKeepsBestKnownTurnCount(t *testing.T) {
	log := testLogger()
	ext := extractor.New()
	eng := agent.New(llm.NoopEnhancer{}, ext, log)
	st := store.New()

	// One turn committed by a healthy pipeline first.
	det := detector.New(ext, llm.NoopEnhancer{}, log)
	good := New(st, det, ext, eng, events.NoopEmitter{}, log)
	process(good, "partial", "Hello there")

	broken := New(st, panicClassifier{}, ext, eng, events.NoopEmitter{}, log)
	resp := process(broken, "partial", "Hello again")

	require.Equal(t, model.StatusError, resp.Status)
	require.Equal(t, 1, resp.EngagementMetrics.TurnCount)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m 30s"},
		{3600, "1h"},
		{3720, "1h 2m"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, formatDuration(tt.seconds))
	}
}
