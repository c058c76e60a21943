package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func authedRequest(modify func(*http.Request)) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth("secret-key")(next)

	req := httptest.NewRequest(http.MethodPost, "/api/agentic-honeypot", nil)
	if modify != nil {
		modify(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthAcceptsBearerKey(t *testing.T) {
	rec := authedRequest(func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer secret-key")
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthAcceptsAPIKeyHeader(t *testing.T) {
	rec := authedRequest(func(r *http.Request) {
		r.Header.Set("X-API-Key", "secret-key")
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejections(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*http.Request)
	}{
		{"missing header", nil},
		{"wrong key", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer wrong-key")
		}},
		{"wrong scheme", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic secret-key")
		}},
		{"key without scheme", func(r *http.Request) {
			r.Header.Set("Authorization", "secret-key")
		}},
		{"wrong api key header", func(r *http.Request) {
			r.Header.Set("X-API-Key", "wrong-key")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := authedRequest(tt.modify)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

func TestAuthRejectsEverythingWhenUnconfigured(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth("")(next)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
