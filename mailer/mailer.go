package mailer

import (
	"log"

	"github.com/resend/resend-go/v2"
)

// Sender delivers one email.
type Sender interface {
	Send(to, subject, html string) error
}

// Resend sends through the Resend API.
type Resend struct {
	client *resend.Client
	from   string
}

func NewResend(apiKey, from string) *Resend {
	return &Resend{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (r *Resend) Send(to, subject, html string) error {
	_, err := r.client.Emails.Send(&resend.SendEmailRequest{
		From:    r.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	return err
}

// Noop logs instead of sending. Used when no API key is configured.
type Noop struct{}

func (Noop) Send(to, subject, html string) error {
	log.Printf("mailer disabled, would send %q to %s", subject, to)
	return nil
}
