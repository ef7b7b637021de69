package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v3"
)

const mailSubject = "Your writing streak"

// MailSender is the part of the Mailgun client Mailgun uses.
type MailSender interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// Mailgun emails each message to one recipient.
type Mailgun struct {
	mg        MailSender
	sender    string
	recipient string
	timeout   time.Duration
}

// NewMailgun returns a notifier sending through the Mailgun domain.
func NewMailgun(domain, apiKey, sender, recipient string) *Mailgun {
	return NewMailgunWithSender(mailgun.NewMailgun(domain, apiKey), sender, recipient)
}

func NewMailgunWithSender(mg MailSender, sender, recipient string) *Mailgun {
	return &Mailgun{
		mg:        mg,
		sender:    sender,
		recipient: recipient,
		timeout:   10 * time.Second,
	}
}

func (m *Mailgun) Notify(ctx context.Context, message string) error {
	msg := m.mg.NewMessage(m.sender, mailSubject, message, m.recipient)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if _, _, err := m.mg.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
