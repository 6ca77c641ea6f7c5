package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockMailer(t *testing.T, handler http.HandlerFunc) *Mailer {
	t.Helper()
	mock := httptest.NewServer(handler)
	t.Cleanup(mock.Close)

	client := resend.NewClient("test-api-key")
	baseURL, err := url.Parse(mock.URL)
	require.NoError(t, err)
	client.BaseURL = baseURL
	return NewWithClient(client, "noreply@example.com", "support@example.com", zap.NewNop().Sugar())
}

func TestSend(t *testing.T) {
	m := newMockMailer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))

		var req resend.SendEmailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "noreply@example.com", req.From)
		assert.Equal(t, []string{"support@example.com"}, req.To)
		assert.Equal(t, "dana@example.com", req.ReplyTo)
		assert.Equal(t, "[question] billing", req.Subject)
		assert.Contains(t, req.Html, "fees")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "mock-email-id"})
	})

	err := m.Send(context.Background(), "dana@example.com", "[question] billing", "<p>how do fees work?</p>")
	assert.NoError(t, err)
}

func TestSendAPIError(t *testing.T) {
	m := newMockMailer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
	})

	err := m.Send(context.Background(), "dana@example.com", "subject", "<p>body</p>")
	assert.Error(t, err)
}
