// Package extractor pulls structured financial and phishing artifacts out of
// raw message text.
package extractor

import (
	"regexp"
	"strings"

	"github.com/honeynet-labs/agentic-honeypot/internal/model"
)

// upiProviders is the allow-list of known payment-handle providers. Tokens
// with providers outside this list are never extracted, which keeps ordinary
// email addresses out of the results.
var upiProviders = []string{
	"paytm", "okaxis", "okhdfcbank", "okicici", "oksbi",
	"ybl", "ibl", "axl", "upi", "apl", "freecharge",
}

// suspiciousKeywords mark a URL as likely phishing when present in its host
// or path.
var suspiciousKeywords = []string{
	"verify", "secure", "account", "update", "confirm", "login",
	"bank", "payment", "kyc", "blocked", "suspended",
}

// brandKeywords catch typosquatted domains impersonating payment brands.
var brandKeywords = []string{
	"hdfc", "icici", "sbi", "axis", "kotak",
	"paytm", "phonepe", "googlepay", "amazon", "flipkart",
}

// Extractor scans text for bank accounts, payment handles, and phishing
// URLs. It is stateless and safe for concurrent use.
type Extractor struct {
	accountRun    *regexp.Regexp
	markedAccount *regexp.Regexp
	upiHandle     *regexp.Regexp
	schemeURL     *regexp.Regexp
	bareHost      *regexp.Regexp
}

// New creates an extractor with all patterns compiled.
func New() *Extractor {
	return &Extractor{
		// Standalone digit runs of 9-18. Word boundaries reject runs
		// embedded in longer digit runs.
		accountRun: regexp.MustCompile(`\b\d{9,18}\b`),
		// Runs glued to an account marker, e.g. "A/C1234567890".
		markedAccount: regexp.MustCompile(`(?i)\b(?:a/c|acc(?:oun)?t?(?:\s*(?:no\.?|number))?)\s*[:=#]?\s*(\d{9,18})\b`),
		upiHandle:     regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9._-]*@(` + strings.Join(upiProviders, "|") + `)$`),
		schemeURL:     regexp.MustCompile(`(?i)^(?:https?://|www\.)\S+$`),
		bareHost:      regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9-]*(?:\.[a-z0-9-]+)*\.[a-z]{2,}(?:/\S*)?$`),
	}
}

// Extract scans text and returns every artifact found. It never fails:
// malformed input yields empty sets. Results are deduplicated in insertion
// order.
func (e *Extractor) Extract(text string) model.ExtractedIntelligence {
	result := model.NewExtractedIntelligence()
	if text == "" {
		return result
	}

	found := model.ExtractedIntelligence{
		BankAccounts: e.extractBankAccounts(text),
		UPIIDs:       []string{},
		PhishingURLs: []string{},
	}

	for _, token := range tokenize(text) {
		if e.upiHandle.MatchString(token) {
			found.UPIIDs = append(found.UPIIDs, token)
			continue
		}
		if url, ok := e.phishingURL(token); ok {
			found.PhishingURLs = append(found.PhishingURLs, url)
		}
	}

	result.Merge(found)
	return result
}

func (e *Extractor) extractBankAccounts(text string) []string {
	var accounts []string
	for _, run := range e.accountRun.FindAllString(text, -1) {
		if plausibleAccount(run) {
			accounts = append(accounts, run)
		}
	}
	for _, m := range e.markedAccount.FindAllStringSubmatch(text, -1) {
		if plausibleAccount(m[1]) {
			accounts = append(accounts, m[1])
		}
	}
	return accounts
}

// plausibleAccount rejects degenerate runs such as 000000000.
func plausibleAccount(run string) bool {
	for i := 1; i < len(run); i++ {
		if run[i] != run[0] {
			return true
		}
	}
	return false
}

func (e *Extractor) phishingURL(token string) (string, bool) {
	if strings.Contains(token, "@") {
		return "", false
	}
	if !e.schemeURL.MatchString(token) && !e.bareHost.MatchString(token) {
		return "", false
	}
	if !suspiciousURL(token) {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(token), "http") {
		token = "http://" + token
	}
	return token, true
}

func suspiciousURL(token string) bool {
	lower := strings.ToLower(token)
	for _, kw := range suspiciousKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, brand := range brandKeywords {
		if strings.Contains(lower, brand) {
			return true
		}
	}
	return false
}

// tokenize splits text on whitespace and strips the punctuation that clings
// to the end of sentences.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, `.,;:!?'"()<>[]`)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
