package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/honeynet-labs/agentic-honeypot/pkg/logger"
)

// writeJSON writes v as the response body. Processed messages always get
// status 200; only transport-level rejections use other codes.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Global().Error("encoding response body", zap.Error(err))
	}
}

// writeUnprocessable rejects a request whose body failed decoding or
// validation.
func writeUnprocessable(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error": message,
	})
}
