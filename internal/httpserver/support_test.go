package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"toolboard/internal/mailer"
)

// setupSupportRouter wires the router against a mock Resend API and reports
// how many delivery attempts reached it.
func setupSupportRouter(t *testing.T, status int) (http.Handler, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "mock-email-id"})
	}))
	t.Cleanup(mock.Close)

	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	lg := zap.NewNop().Sugar()
	client := resend.NewClient("test-api-key")
	baseURL, err := url.Parse(mock.URL)
	require.NoError(t, err)
	client.BaseURL = baseURL
	m := mailer.NewWithClient(client, "noreply@example.com", "support@example.com", lg)
	return NewRouter(db, m, lg), &calls
}

func validSupportBody() map[string]any {
	return map[string]any{
		"type":    "question",
		"name":    "Dana",
		"email":   "dana@example.com",
		"subject": "billing",
		"message": "how do fees work?",
	}
}

func TestSupportDelivers(t *testing.T) {
	h, calls := setupSupportRouter(t, http.StatusOK)

	rec := doRequest(t, h, http.MethodPost, "/v1/support", "", validSupportBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decodeBody(t, rec)["success"])
	assert.Equal(t, int32(1), calls.Load())
}

func TestSupportInvalidEmailFailsBeforeDelivery(t *testing.T) {
	h, calls := setupSupportRouter(t, http.StatusOK)

	body := validSupportBody()
	body["email"] = "not-an-email"
	rec := doRequest(t, h, http.MethodPost, "/v1/support", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
	assert.Equal(t, int32(0), calls.Load(), "validation failures must never reach the provider")
}

func TestSupportFieldValidation(t *testing.T) {
	h, calls := setupSupportRouter(t, http.StatusOK)

	for _, mutate := range []func(map[string]any){
		func(b map[string]any) { b["type"] = "complaint" },
		func(b map[string]any) { delete(b, "name") },
		func(b map[string]any) { delete(b, "subject") },
		func(b map[string]any) { delete(b, "message") },
	} {
		body := validSupportBody()
		mutate(body)
		rec := doRequest(t, h, http.MethodPost, "/v1/support", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %v", body)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestSupportDeliveryFailure(t *testing.T) {
	h, calls := setupSupportRouter(t, http.StatusInternalServerError)

	rec := doRequest(t, h, http.MethodPost, "/v1/support", "", validSupportBody())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
	assert.Equal(t, int32(1), calls.Load())
}
