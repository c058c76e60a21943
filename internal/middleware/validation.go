package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/honeynet-labs/agentic-honeypot/internal/model"
)

const (
	maxMessageLength        = 100000 // ~100KB
	maxConversationIDLength = 256
)

// ValidateHoneypotRequest checks the decoded request body. Failures map to
// HTTP 422 at the handler.
func ValidateHoneypotRequest(req *model.HoneypotRequest) error {
	if req.ConversationID == "" {
		return errors.New("conversation_id is required")
	}
	if len(req.ConversationID) > maxConversationIDLength {
		return errors.New("conversation_id exceeds maximum length")
	}
	if req.Message == "" {
		return errors.New("message is required")
	}
	if len(req.Message) > maxMessageLength {
		return errors.New("message exceeds maximum length")
	}
	if !utf8.ValidString(req.Message) {
		return errors.New("message must be valid UTF-8")
	}
	for _, h := range req.History {
		if len(h.Content) > maxMessageLength {
			return errors.New("history content exceeds maximum length")
		}
	}
	return nil
}
