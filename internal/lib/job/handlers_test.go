package job

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/mongo-starter/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []email.Message
	err  error
}

func (s *recordingSender) Send(msg email.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newTestJobService(sender email.Sender) *JobService {
	logger := zerolog.Nop()
	return &JobService{
		logger: &logger,
		email:  email.NewClientWithSender(sender, "noreply@example.com", &logger),
	}
}

func TestWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("ada@example.com", "Ada")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	sender := &recordingSender{}
	require.NoError(t, newTestJobService(sender).handleWelcomeEmailTask(context.Background(), task))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ada@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].HTML, "Ada")
}

func TestSignInLinkTask(t *testing.T) {
	task, err := NewSignInLinkTask("ada@example.com", "https://app.example.com/api/auth/callback/email?token=t1")
	require.NoError(t, err)
	assert.Equal(t, TaskSignInLink, task.Type())

	sender := &recordingSender{}
	require.NoError(t, newTestJobService(sender).handleSignInLinkTask(context.Background(), task))

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "token=t1")
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	j := newTestJobService(&recordingSender{})
	bad := []byte("{not json")

	err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, bad))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = j.handleSignInLinkTask(context.Background(), asynq.NewTask(TaskSignInLink, bad))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSendFailureIsRetried(t *testing.T) {
	sendErr := errors.New("relay refused")
	task, err := NewWelcomeEmailTask("ada@example.com", "Ada")
	require.NoError(t, err)

	err = newTestJobService(&recordingSender{err: sendErr}).handleWelcomeEmailTask(context.Background(), task)
	assert.ErrorIs(t, err, sendErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
