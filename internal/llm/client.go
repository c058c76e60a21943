// Package llm provides the optional language-model enhancement layer.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by the no-op enhancer and by providers that
// cannot serve a request. Callers treat it as "keep the deterministic
// result".
var ErrUnavailable = errors.New("llm enhancement unavailable")

// ChatMessage is a single message in a completion request.
type ChatMessage struct {
	Role    string
	Content string
}

// CompletionRequest is a provider-neutral completion request.
type CompletionRequest struct {
	System      string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// CompletionResponse is a provider-neutral completion response.
type CompletionResponse struct {
	Content   string
	Model     string
	LatencyMs int64
}

// Client is the interface for LLM providers.
type Client interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string
}

// Provider is the type of LLM provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// NewClient creates a new LLM client based on provider.
func NewClient(provider Provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey)
	default:
		return NewAnthropicClient(apiKey)
	}
}
