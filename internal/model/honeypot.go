package model

// HistoryMessage is one prior message supplied by the caller.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HoneypotRequest is the request body for POST /api/agentic-honeypot.
type HoneypotRequest struct {
	ConversationID string           `json:"conversation_id"`
	Message        string           `json:"message"`
	History        []HistoryMessage `json:"history,omitempty"`
}

// EngagementMetrics describes how long the honeypot has held the sender.
type EngagementMetrics struct {
	TurnCount          int    `json:"turn_count"`
	EngagementDuration string `json:"engagement_duration"`
}

// HoneypotResponse is the fixed-shape response body. Fields are never null;
// intelligence arrays default to empty.
type HoneypotResponse struct {
	ScamDetected          bool                  `json:"scam_detected"`
	AgentActivated        bool                  `json:"agent_activated"`
	AgentReply            string                `json:"agent_reply"`
	EngagementMetrics     EngagementMetrics     `json:"engagement_metrics"`
	ExtractedIntelligence ExtractedIntelligence `json:"extracted_intelligence"`
	Status                string                `json:"status"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SafeDefaultResponse is the payload returned whenever internal processing
// fails. turnCount carries the best-known turn count, 0 if unavailable.
func SafeDefaultResponse(turnCount int) HoneypotResponse {
	return HoneypotResponse{
		ScamDetected:   false,
		AgentActivated: false,
		AgentReply:     "",
		EngagementMetrics: EngagementMetrics{
			TurnCount:          turnCount,
			EngagementDuration: "0s",
		},
		ExtractedIntelligence: NewExtractedIntelligence(),
		Status:                StatusError,
	}
}
