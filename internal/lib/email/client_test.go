package email

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (s *recordingSender) Send(msg Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newTestClient(sender Sender) *Client {
	logger := zerolog.Nop()
	return NewClientWithSender(sender, "Mongo Starter <noreply@example.com>", &logger)
}

func TestEveryTemplateRendersWithPreviewData(t *testing.T) {
	c := newTestClient(&recordingSender{})

	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := c.Render(name, data)
			require.NoError(t, err)
			for _, value := range data {
				assert.Contains(t, html, value)
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := newTestClient(&recordingSender{}).Render("missing", nil)
	assert.ErrorContains(t, err, "failed to execute email template missing")
}

func TestRenderEscapesData(t *testing.T) {
	html, err := newTestClient(&recordingSender{}).Render(TemplateWelcome, map[string]string{
		"UserName": "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSendWelcomeEmail(t *testing.T) {
	sender := &recordingSender{}
	require.NoError(t, newTestClient(sender).SendWelcomeEmail("ada@example.com", "Ada"))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Mongo Starter <noreply@example.com>", msg.From)
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Welcome to Mongo Starter!", msg.Subject)
	assert.Contains(t, msg.HTML, "Welcome, Ada!")
}

func TestSendSignInLinkEmail(t *testing.T) {
	sender := &recordingSender{}
	link := "https://app.example.com/api/auth/callback/email?token=abc"
	require.NoError(t, newTestClient(sender).SendSignInLinkEmail("ada@example.com", link))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Sign in to Mongo Starter", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, "token=abc")
}

func TestSendEmailWrapsSenderErrors(t *testing.T) {
	sendErr := errors.New("relay refused")
	err := newTestClient(&recordingSender{err: sendErr}).SendWelcomeEmail("ada@example.com", "Ada")
	assert.ErrorIs(t, err, sendErr)
}
