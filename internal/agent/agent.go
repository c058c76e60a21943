// Package agent produces decoy persona replies that keep a scammer engaged.
package agent

import (
	"context"

	"github.com/honeynet-labs/agentic-honeypot/internal/llm"
	"github.com/honeynet-labs/agentic-honeypot/internal/model"
	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
	"github.com/honeynet-labs/agentic-honeypot/pkg/metrics"
	"go.uber.org/zap"
)

// stage is the position in the engagement progression.
type stage int

const (
	stageConcerned stage = iota // turn 1: confused and worried
	stageStalling               // turn 2: compliant-seeming but slow
	stageProbing                // turn 3+: requesting identifying details
)

func stageFor(turnCount int) stage {
	switch {
	case turnCount <= 1:
		return stageConcerned
	case turnCount <= 2:
		return stageStalling
	default:
		return stageProbing
	}
}

// templates maps (category, stage) to reply variants. Selection is a pure
// function of (category, turn count) so behavior is testable. None of the
// replies contain digits, payment handles, or links: the agent never
// fabricates extractable artifacts.
var templates = map[model.ScamCategory]map[stage][]string{
	model.CategoryPaymentThreat: {
		stageConcerned: {
			"Oh no, I really don't want to lose my money. What exactly do I need to do?",
			"This is very worrying. Can you explain what happens to my account?",
		},
		stageStalling: {
			"Okay, I want to sort this out. I'm just opening my banking app now, give me a moment.",
			"I understand. Let me find my passbook first, I keep it in the other room.",
			"I'm at work right now but I don't want to lose the money. Can you stay on while I check?",
		},
		stageProbing: {
			"Before I send anything, can you confirm exactly which account or payment address I should use?",
			"My app is asking for the recipient details again. Can you type out the full account information for me?",
			"What is the exact amount, and where precisely should I transfer it? I don't want to make a mistake.",
		},
	},
	model.CategoryOTPPhishing: {
		stageConcerned: {
			"Oh no, is my account really at risk? I'm not very good with these things.",
			"That sounds serious. What is this code you need, and why?",
		},
		stageStalling: {
			"I think a message just came, but my phone is acting up. Can you give me a minute?",
			"Sorry, I'm not very tech-savvy. Can you walk me through this slowly?",
			"My phone battery is nearly dead. Can we continue this in a little while?",
		},
		stageProbing: {
			"Before I share anything, can you confirm which bank you are calling from and your employee details?",
			"My nephew says I should verify who you are first. What number or address can I check?",
			"Which website should I go to exactly? Please spell it out for me.",
		},
	},
	model.CategoryGeneric: {
		stageConcerned: {
			"Oh! That is concerning. Can you tell me more about what happened?",
			"I'm a bit confused. What exactly is the problem?",
		},
		stageStalling: {
			"I see. I'm quite busy at the moment, but this sounds important. Can you explain again?",
			"Okay, I want to cooperate. What do you need from me exactly?",
			"Hold on, let me write this down. Could you repeat that?",
		},
		stageProbing: {
			"Before I do anything, where exactly should I send things? Please give me the full details.",
			"Is there an official reference number or an address I can note down?",
			"Who should the payment go to, exactly? I need the complete details to proceed.",
		},
	},
}

// delayTactics are category-neutral stalling lines blended into long-running
// engagements to keep the scammer invested without repeating the probing
// variants verbatim.
var delayTactics = []string{
	"Sorry, my internet keeps dropping. Can you send those details once more?",
	"My daughter just called, give me two minutes and I will do it right away.",
	"The app logged me out again. While I log back in, can you re-send the payment details?",
	"I wrote it down but my handwriting is terrible. Please type the full details again so I get it right.",
}

// delayTacticStart is the engagement turn from which delay tactics join the
// probing rotation.
const delayTacticStart = 5

const maxReplyLength = 400

// Agent generates decoy replies. The deterministic template is always
// computed first; the optional LLM reply substitutes it only when the call
// succeeds and the content is safe.
type Agent struct {
	enhancer  llm.Enhancer
	inspector artifactInspector
	logger    *logger.Logger
}

// artifactInspector checks generated text for extractable artifacts.
type artifactInspector interface {
	Extract(text string) model.ExtractedIntelligence
}

// New creates an engagement agent.
func New(enh llm.Enhancer, inspector artifactInspector, log *logger.Logger) *Agent {
	return &Agent{enhancer: enh, inspector: inspector, logger: log}
}

// Reply produces the decoy reply for a scam-positive conversation. turnCount
// is the engagement turn index: how many scammer messages the conversation
// has received, including the one being answered.
func (a *Agent) Reply(ctx context.Context, category model.ScamCategory, turnCount int, transcript []model.Turn) string {
	fallback := a.templateReply(category, turnCount)

	generated, err := a.enhancer.GenerateReply(ctx, category, turnCount, transcript)
	if err != nil {
		metrics.AgentRepliesTotal.WithLabelValues("template").Inc()
		return fallback
	}
	if !a.safeReply(generated) {
		a.logger.Warn("discarding unsafe generated reply",
			zap.String("category", string(category)),
			zap.Int("turn_count", turnCount),
		)
		metrics.AgentRepliesTotal.WithLabelValues("template").Inc()
		return fallback
	}

	metrics.AgentRepliesTotal.WithLabelValues("llm").Inc()
	return generated
}

// templateReply picks a template deterministically from (category, turnCount).
func (a *Agent) templateReply(category model.ScamCategory, turnCount int) string {
	byStage, ok := templates[category]
	if !ok {
		byStage = templates[model.CategoryGeneric]
	}
	variants := byStage[stageFor(turnCount)]
	if turnCount >= delayTacticStart {
		variants = append(append([]string{}, variants...), delayTactics...)
	}
	if turnCount < 1 {
		turnCount = 1
	}
	return variants[(turnCount-1)%len(variants)]
}

// safeReply rejects empty output, oversized output, and anything that would
// itself introduce an extractable artifact into the conversation.
func (a *Agent) safeReply(reply string) bool {
	if reply == "" || len(reply) > maxReplyLength {
		return false
	}
	artifacts := a.inspector.Extract(reply)
	return artifacts.IsEmpty()
}
