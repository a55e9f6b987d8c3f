package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskWelcome = "email:welcome"

	// TaskSignInLink delivers an e-mail sign-in link.
	TaskSignInLink = "email:signin"
)

// WelcomeEmailPayload is the JSON payload for TaskWelcome.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// SignInLinkPayload is the JSON payload for TaskSignInLink.
type SignInLinkPayload struct {
	To   string `json:"to"`
	Link string `json:"link"`
}

// NewWelcomeEmailTask constructs an Asynq task for sending a welcome email.
//
// Options: up to 3 retries, "default" queue, 30s timeout.
func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, Name: name})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewSignInLinkTask constructs the task carrying a sign-in link. The link
// expires on its own, so retries stop well before that.
func NewSignInLinkTask(to, link string) (*asynq.Task, error) {
	payload, err := json.Marshal(SignInLinkPayload{To: to, Link: link})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskSignInLink,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
