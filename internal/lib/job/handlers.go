package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/mongo-starter/internal/config"
	"github.com/deppfellow/mongo-starter/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers builds the e-mail client the task handlers send through.
// It must run before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.email = email.NewClient(cfg, logger)
}

// handleWelcomeEmailTask sends the welcome e-mail. Returning an error makes
// Asynq mark the task failed and schedule a retry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.Name); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

func (j *JobService) handleSignInLinkTask(ctx context.Context, t *asynq.Task) error {
	var p SignInLinkPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal sign-in link payload: %w: %w", err, asynq.SkipRetry)
	}

	// The link itself is a bearer credential; never log it.
	if err := j.email.SendSignInLinkEmail(p.To, p.Link); err != nil {
		j.logger.Error().
			Str("type", "signin").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send sign-in link")
		return err
	}

	j.logger.Info().
		Str("type", "signin").
		Str("to", p.To).
		Msg("Successfully sent sign-in link")

	return nil
}
