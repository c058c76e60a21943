package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honeynet-labs/agentic-honeypot/internal/model"
)

func TestValidateHoneypotRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     model.HoneypotRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  model.HoneypotRequest{ConversationID: "c1", Message: "hello"},
		},
		{
			name: "valid with history",
			req: model.HoneypotRequest{
				ConversationID: "c1",
				Message:        "hello",
				History:        []model.HistoryMessage{{Role: "scammer", Content: "hi"}},
			},
		},
		{
			name:    "missing conversation id",
			req:     model.HoneypotRequest{Message: "hello"},
			wantErr: true,
		},
		{
			name:    "missing message",
			req:     model.HoneypotRequest{ConversationID: "c1"},
			wantErr: true,
		},
		{
			name:    "oversized message",
			req:     model.HoneypotRequest{ConversationID: "c1", Message: strings.Repeat("x", maxMessageLength+1)},
			wantErr: true,
		},
		{
			name:    "invalid utf8",
			req:     model.HoneypotRequest{ConversationID: "c1", Message: string([]byte{0xff, 0xfe})},
			wantErr: true,
		},
		{
			name:    "oversized conversation id",
			req:     model.HoneypotRequest{ConversationID: strings.Repeat("x", maxConversationIDLength+1), Message: "hello"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHoneypotRequest(&tt.req)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
