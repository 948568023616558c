package notification

import (
	"context"
	"fmt"

	"consultorio/models"
	"consultorio/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, msg models.EmailPayload) error
}

type sendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewMailer returns a SendGrid mailer, or a logging mailer when apiKey is empty.
func NewMailer(apiKey, fromEmail, fromName string) Mailer {
	if apiKey == "" {
		return LogMailer{}
	}
	return &sendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *sendGridMailer) Send(ctx context.Context, msg models.EmailPayload) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	utils.GetLogger().Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

// LogMailer only logs; used when no provider is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg models.EmailPayload) error {
	utils.GetLogger().Info("mail disabled, would send", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
