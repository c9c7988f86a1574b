package mailer

import (
	"context"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/logger"

	"go.uber.org/zap"
)

// ConsoleMailer logs outbound mail instead of sending it. Used in
// development so registration works without SendGrid credentials.
type ConsoleMailer struct{}

var _ domain.Mailer = (*ConsoleMailer)(nil)

// NewConsoleMailer creates a console-backed mailer.
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// Send logs the message and always succeeds.
func (m *ConsoleMailer) Send(ctx context.Context, to string, subject string, body string) error {
	logger.Get().Info("outbound email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
