package email

import (
	"github.com/deppfellow/mongo-starter/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"gopkg.in/gomail.v2"
)

// SMTPSender delivers through a mail relay. SMTP AUTH is only attempted when
// both user and password are configured.
type SMTPSender struct {
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	dialer := &gomail.Dialer{Host: cfg.Host, Port: cfg.Port}
	if cfg.UsesSMTPAuth() {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return &SMTPSender{dialer: dialer}
}

func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return errors.Wrapf(err, "smtp relay %s:%d", s.dialer.Host, s.dialer.Port)
	}
	return nil
}

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(msg Message) error {
	_, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return errors.Wrap(err, "resend")
	}
	return nil
}
