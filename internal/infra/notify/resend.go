package notify

import (
	"context"
	"errors"

	"github.com/resend/resend-go/v2"
)

type ResendMailer struct {
	client *resend.Client
	from   string
}

var _ Mailer = (*ResendMailer)(nil)

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) Send(ctx context.Context, mail Mail) error {
	if len(mail.To) == 0 {
		return errors.New("mail without recipients")
	}
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      mail.To,
		Subject: mail.Subject,
		Html:    mail.HTML,
		Text:    mail.Text,
	})
	return err
}
