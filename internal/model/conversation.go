package model

import (
	"time"
)

// ConversationState is the per-conversation state owned by the store.
// ScamDetected and AgentActivated are sticky: once true they stay true for
// the conversation's lifetime. Turns is append-only.
type ConversationState struct {
	ID             string
	Turns          []Turn
	CreatedAt      time.Time
	LastActivity   time.Time
	ScamDetected   bool
	AgentActivated bool
	Category       ScamCategory
	Intelligence   ExtractedIntelligence
}

// NewConversationState creates the state for an unseen conversation ID.
func NewConversationState(id string) *ConversationState {
	now := time.Now()
	return &ConversationState{
		ID:           id,
		Turns:        []Turn{},
		CreatedAt:    now,
		LastActivity: now,
		Intelligence: NewExtractedIntelligence(),
	}
}

// TurnCount is derived from the turn sequence length.
func (s *ConversationState) TurnCount() int {
	return len(s.Turns)
}

// Append adds a turn and bumps the activity timestamp.
func (s *ConversationState) Append(t Turn) {
	s.Turns = append(s.Turns, t)
	s.LastActivity = time.Now()
}

// Snapshot is a point-in-time read-only projection of a conversation,
// never a live reference into store-owned state.
type Snapshot struct {
	ID             string
	Turns          []Turn
	TurnCount      int
	CreatedAt      time.Time
	LastActivity   time.Time
	ScamDetected   bool
	AgentActivated bool
	Category       ScamCategory
	Intelligence   ExtractedIntelligence
}

// Snapshot deep-copies the state into a projection.
func (s *ConversationState) Snapshot() Snapshot {
	turns := make([]Turn, len(s.Turns))
	copy(turns, s.Turns)
	return Snapshot{
		ID:             s.ID,
		Turns:          turns,
		TurnCount:      len(s.Turns),
		CreatedAt:      s.CreatedAt,
		LastActivity:   s.LastActivity,
		ScamDetected:   s.ScamDetected,
		AgentActivated: s.AgentActivated,
		Category:       s.Category,
		Intelligence:   s.Intelligence.Clone(),
	}
}
