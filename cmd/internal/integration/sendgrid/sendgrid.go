// Package sendgrid wraps the SendGrid v3 mail API for transactional
// clinic emails.
package sendgrid

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailSender interface {
	Send(toName, toEmail, subject, plainText, htmlBody string) error
}

type Client struct {
	apiKey    string
	fromName  string
	fromEmail string
}

func NewClient() *Client {
	return &Client{
		apiKey:    os.Getenv("SENDGRID_API_KEY"),
		fromName:  os.Getenv("SENDGRID_FROM_NAME"),
		fromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
	}
}

func (c *Client) Send(toName, toEmail, subject, plainText, htmlBody string) error {
	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
