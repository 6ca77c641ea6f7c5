package handlers

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"toolboard/internal/mailer"
)

var validate = validator.New()

type supportRequest struct {
	Type    string `json:"type" validate:"required,oneof=question support feature"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func supportBody(req supportRequest) string {
	return fmt.Sprintf(
		"<p><strong>Type:</strong> %s</p><p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(req.Type),
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Message),
	)
}

// SubmitSupport validates the contact form and forwards it to the support
// inbox. Validation failures never reach the mail provider; the success flag
// lets clients tell a validation failure from a delivery failure.
func SubmitSupport(m *mailer.Mailer, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req supportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return
		}
		if err := validate.Struct(req); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return
		}
		subject := fmt.Sprintf("[%s] %s", req.Type, req.Subject)
		if err := m.Send(r.Context(), req.Email, subject, supportBody(req)); err != nil {
			lg.Errorw("support email delivery failed", "type", req.Type, "error", err)
			respondStatus(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "failed to send support message"})
			return
		}
		respondJSON(w, map[string]any{"success": true})
	}
}
