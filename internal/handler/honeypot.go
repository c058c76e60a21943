package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/honeynet-labs/agentic-honeypot/internal/middleware"
	"github.com/honeynet-labs/agentic-honeypot/internal/model"
	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
)

// Processor runs the honeypot pipeline for one message.
type Processor interface {
	Process(ctx context.Context, req *model.HoneypotRequest) model.HoneypotResponse
}

// HoneypotHandler handles POST /api/agentic-honeypot.
type HoneypotHandler struct {
	pipeline Processor
	logger   *logger.Logger
}

// NewHoneypotHandler creates a new honeypot handler.
func NewHoneypotHandler(p Processor, log *logger.Logger) *HoneypotHandler {
	return &HoneypotHandler{pipeline: p, logger: log}
}

// Handle decodes and validates the request, runs the pipeline, and always
// answers authenticated, schema-valid requests with HTTP 200. Validation
// failures are the only non-200 outcome here, as 422.
func (h *HoneypotHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req model.HoneypotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeUnprocessable(w, "invalid request body")
		return
	}

	if err := middleware.ValidateHoneypotRequest(&req); err != nil {
		writeUnprocessable(w, err.Error())
		return
	}

	h.logger.Debug("processing message",
		zap.String("conversation_id", req.ConversationID),
		zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
	)

	resp := h.pipeline.Process(r.Context(), &req)
	writeJSON(w, http.StatusOK, resp)
}
