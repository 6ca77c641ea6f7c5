// Package mailer delivers outbound notification email through the Resend API.
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type Mailer struct {
	client *resend.Client
	from   string
	to     string
	lg     *zap.SugaredLogger
}

// New builds a Mailer that sends from `from` to the fixed inbox `to`.
func New(apiKey, from, to string, lg *zap.SugaredLogger) *Mailer {
	return NewWithClient(resend.NewClient(apiKey), from, to, lg)
}

// NewWithClient accepts a preconfigured Resend client. Tests use this to point
// the client at a mock API server.
func NewWithClient(client *resend.Client, from, to string, lg *zap.SugaredLogger) *Mailer {
	return &Mailer{client: client, from: from, to: to, lg: lg}
}

// Send delivers one HTML message. replyTo carries the submitter's address so
// the support inbox can answer directly.
func (m *Mailer) Send(ctx context.Context, replyTo, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		ReplyTo: replyTo,
		Subject: subject,
		Html:    html,
	}
	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	m.lg.Infow("email sent", "email_id", sent.Id, "subject", subject)
	return nil
}
