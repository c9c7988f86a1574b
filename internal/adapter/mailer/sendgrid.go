package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Lanziify/seps-web-server/internal/config"
	"github.com/Lanziify/seps-web-server/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridMailer sends transactional mail through the SendGrid v3 API.
type SendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

var _ domain.Mailer = (*SendgridMailer)(nil)

// NewSendgridMailer creates a SendGrid-backed mailer.
func NewSendgridMailer(cfg config.MailConfig) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(cfg.SendgridKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

// Send delivers a plain-text message. A non-2xx API response is a delivery
// failure and is reported to the caller.
func (m *SendgridMailer) Send(ctx context.Context, to string, subject string, body string) error {
	message := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail("", to), body, "")

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid send failed: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
