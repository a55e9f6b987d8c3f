// Package email renders HTML templates and hands the result to a Sender.
//
// Two senders exist: an SMTP relay (gomail) for the e-mail sign-in provider
// and local development, and the Resend API. email.provider selects one.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/deppfellow/mongo-starter/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Message is a rendered e-mail ready for delivery.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(msg Message) error
}

// Client renders templates and sends them through its Sender.
type Client struct {
	sender    Sender
	from      string
	templates *template.Template
	logger    *zerolog.Logger
}

// NewClient creates a Client for the configured provider.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	var sender Sender
	switch cfg.Email.Provider {
	case "resend":
		sender = NewResendSender(cfg.Email.ResendAPIKey)
	default:
		sender = NewSMTPSender(cfg.Email.SMTP)
	}
	return NewClientWithSender(sender, cfg.Email.From, logger)
}

// NewClientWithSender creates a Client around an existing Sender.
func NewClientWithSender(sender Sender, from string, logger *zerolog.Logger) *Client {
	return &Client{
		sender:    sender,
		from:      from,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:    logger,
	}
}

// Render executes the named template with data.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := c.templates.ExecuteTemplate(&body, string(templateName)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	err = c.sender.Send(Message{
		From:    c.from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().Str("template", string(templateName)).Str("to", to).Msg("email sent")
	return nil
}
