// Package detector scores messages for scam likelihood.
package detector

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/honeynet-labs/agentic-honeypot/internal/extractor"
	"github.com/honeynet-labs/agentic-honeypot/internal/llm"
	"github.com/honeynet-labs/agentic-honeypot/internal/model"
	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
)

const (
	// scamThreshold is the fixed cutoff a message's normalized score must
	// cross to be classified as a scam. Not tunable per request.
	scamThreshold = 0.40

	// ambiguousBand is the half-width of the score band around the cutoff
	// in which the optional LLM verdict may override the keyword verdict.
	ambiguousBand = 0.15
)

// Verdict is the outcome of classifying one message.
type Verdict struct {
	IsScam     bool
	Confidence float64
	Category   model.ScamCategory
}

// signal is one weighted scam indicator.
type signal struct {
	pattern  *regexp.Regexp
	weight   float64
	category model.ScamCategory
}

func newSignals() []signal {
	return []signal{
		// Account/security threats
		{regexp.MustCompile(`(?i)\b(account|profile)\s+(?:is\s+|has\s+been\s+)?(blocked|suspended|locked|frozen|deactivated|compromised)\b`), 0.35, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\bsuspicious\s+activity\b`), 0.25, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\bunauthorized\s+(access|transaction|login)\b`), 0.30, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\bsecurity\s+(alert|warning|breach)\b`), 0.25, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\baccount\s+will\s+be\s+(deleted|closed|terminated)\b`), 0.30, model.CategoryPaymentThreat},

		// Urgency and pressure
		{regexp.MustCompile(`(?i)\b(urgent|immediate(?:ly)?|act\s+now|right\s+away|within\s+\d+\s+hours?)\b`), 0.20, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\b(last\s+chance|final\s+(warning|notice)|expire[sd]?|limited\s+time)\b`), 0.20, model.CategoryGeneric},

		// Payment demands
		{regexp.MustCompile(`(?i)\b(pay|send|transfer)\b[^.?!]{0,60}\b(money|amount|payment|fee|fine|account|upi|rs\.?|rupees)\b`), 0.35, model.CategoryPaymentThreat},
		{regexp.MustCompile(`(?i)\btransfer\s+to\b`), 0.30, model.CategoryPaymentThreat},
		{regexp.MustCompile(`(?i)\b(credit|debit)\s+card\s+(number|details|info)\b`), 0.35, model.CategoryPaymentThreat},
		{regexp.MustCompile(`(?i)\b(upi\s+id|google\s+pay|phonepe|paytm|bitcoin|crypto\s*currency)\b`), 0.25, model.CategoryPaymentThreat},

		// OTP / verification phishing
		{regexp.MustCompile(`(?i)\b(otp|one[\s-]?time\s+password|cvv|pin)\b`), 0.40, model.CategoryOTPPhishing},
		{regexp.MustCompile(`(?i)\bverify\s+(your|account|identity|details)\b`), 0.30, model.CategoryOTPPhishing},
		{regexp.MustCompile(`(?i)\bkyc\s+(update|verification|required|pending|incomplete)\b`), 0.30, model.CategoryOTPPhishing},
		{regexp.MustCompile(`(?i)\bconfirm\s+(your|identity|details)\b`), 0.25, model.CategoryOTPPhishing},

		// Prize bait
		{regexp.MustCompile(`(?i)\b(won|winner|congratulations)\b[^.?!]{0,60}\b(prize|lottery|reward)\b`), 0.30, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\bfree\s+(money|gift|iphone|laptop)\b`), 0.30, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\bclaim\s+(your|the)?\s*(prize|reward)\b`), 0.30, model.CategoryGeneric},

		// Phishing lures
		{regexp.MustCompile(`(?i)\bclick\s+(here|the\s+link|below)\b`), 0.25, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\b(download|install)\s+(the\s+)?(app|application|certificate|software)\b`), 0.25, model.CategoryGeneric},

		// Impersonation
		{regexp.MustCompile(`(?i)\b(bank|government|tax|police|court)\s+(official|representative|officer)\b`), 0.20, model.CategoryGeneric},
		{regexp.MustCompile(`(?i)\b(customer|technical)\s+(support|service|care)\b`), 0.15, model.CategoryGeneric},
	}
}

// Detector classifies messages with a weighted lexicon plus structural
// signals from the extractor. The optional enhancer is consulted only for
// scores inside the ambiguous band, and its failures never surface.
type Detector struct {
	signals   []signal
	extractor *extractor.Extractor
	enhancer  llm.Enhancer
	logger    *logger.Logger
}

// New creates a detector. The enhancer must not be nil; pass
// llm.NoopEnhancer{} when no LLM is configured.
func New(ext *extractor.Extractor, enh llm.Enhancer, log *logger.Logger) *Detector {
	return &Detector{
		signals:   newSignals(),
		extractor: ext,
		enhancer:  enh,
		logger:    log,
	}
}

// Classify scores a single message. History is passed through to the
// optional enhancer for context only; sticky per-conversation decisions are
// enforced by the pipeline against stored state.
func (d *Detector) Classify(ctx context.Context, message string, history []model.HistoryMessage) Verdict {
	score := 0.0
	category := model.CategoryNone
	topWeight := 0.0

	for _, sig := range d.signals {
		if !sig.pattern.MatchString(message) {
			continue
		}
		score += sig.weight
		if sig.weight > topWeight {
			topWeight = sig.weight
			category = sig.category
		}
	}

	// Structural signals: an extractable artifact in the message itself is
	// strong evidence.
	artifacts := d.extractor.Extract(message)
	if len(artifacts.PhishingURLs) > 0 {
		score += 0.30
		if category == model.CategoryNone {
			category = model.CategoryGeneric
		}
	}
	if len(artifacts.UPIIDs) > 0 {
		score += 0.30
		if category == model.CategoryNone || category == model.CategoryGeneric {
			category = model.CategoryPaymentThreat
		}
	}
	if len(artifacts.BankAccounts) > 0 {
		score += 0.20
		if category == model.CategoryNone || category == model.CategoryGeneric {
			category = model.CategoryPaymentThreat
		}
	}

	if score > 1.0 {
		score = 1.0
	}

	isScam := score >= scamThreshold

	// Within the ambiguous band the enhancer's verdict wins. Outside it, or
	// on any enhancer failure, the keyword verdict stands.
	if score >= scamThreshold-ambiguousBand && score < scamThreshold+ambiguousBand {
		verdict, err := d.enhancer.ClassifyAmbiguous(ctx, message, history)
		if err == nil {
			isScam = verdict
		} else if !errors.Is(err, llm.ErrUnavailable) {
			d.logger.Warn("ambiguous classification fell back to keyword verdict",
				zap.Float64("score", score),
				zap.Error(err))
		}
	}

	if isScam && category == model.CategoryNone {
		category = model.CategoryGeneric
	}
	if !isScam {
		category = model.CategoryNone
	}

	return Verdict{IsScam: isScam, Confidence: score, Category: category}
}
