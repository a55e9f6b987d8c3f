package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/deppfellow/mongo-starter/internal/database"
	"github.com/deppfellow/mongo-starter/internal/errs"
	"github.com/deppfellow/mongo-starter/internal/lib/job"
	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/repository"
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// defaultUserName is stored for accounts created without a name.
const defaultUserName = "User"

// emailCallbackPath is where sign-in links point.
const emailCallbackPath = "/api/auth/callback/email"

// SignInResult is returned by every successful sign-in.
type SignInResult struct {
	Token   string
	User    *model.User
	Session *model.Session
	Created bool
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type auditRecorder interface {
	Record(ctx context.Context, action string, userID primitive.ObjectID, email string, meta map[string]any) error
}

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// transactor runs fn in a transaction; store calls made with the context it
// passes to fn join that transaction.
type transactor func(ctx context.Context, fn func(txCtx context.Context) error) error

// AuthService signs users in with the credentials and e-mail link providers.
type AuthService struct {
	logger        *zerolog.Logger
	baseURL       string
	users         userStore
	auditLogs     auditRecorder
	jobs          taskEnqueuer
	sessions      *SessionManager
	inTransaction transactor
	now           func() time.Time
}

func NewAuthService(s *server.Server, repos *repository.Repositories, auditLogs *AuditLogService, sessions *SessionManager) *AuthService {
	return &AuthService{
		logger:    s.Logger,
		baseURL:   s.Config.Auth.BaseURL,
		users:     repos.Users,
		auditLogs: auditLogs,
		jobs:      s.Job.Client,
		sessions:  sessions,
		inTransaction: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			_, err := database.RunInTransaction(ctx, s.DB, func(txCtx context.Context) (struct{}, error) {
				return struct{}{}, fn(txCtx)
			})
			return err
		},
		now: time.Now,
	}
}

// SignInWithCredentials finds or creates the user for email and issues a session.
func (s *AuthService) SignInWithCredentials(ctx context.Context, email, name string) (*SignInResult, error) {
	return s.signIn(ctx, email, name, "credentials")
}

// RequestSignInLink e-mails a one-time sign-in link to email.
func (s *AuthService) RequestSignInLink(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)

	token, err := s.sessions.IssueSignInLink(email)
	if err != nil {
		return fmt.Errorf("failed to issue sign-in link: %w", err)
	}

	link := strings.TrimRight(s.baseURL, "/") + emailCallbackPath + "?token=" + url.QueryEscape(token)

	task, err := job.NewSignInLinkTask(email, link)
	if err != nil {
		return fmt.Errorf("failed to build sign-in link task: %w", err)
	}
	if _, err := s.jobs.EnqueueContext(ctx, task, asynq.Queue("critical")); err != nil {
		return fmt.Errorf("failed to enqueue sign-in link: %w", err)
	}

	if err := s.auditLogs.Record(ctx, model.AuditActionSignInLink, primitive.NilObjectID, email, nil); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record sign-in link audit entry")
	}
	return nil
}

// SignInWithLink verifies a sign-in link token and signs its owner in.
func (s *AuthService) SignInWithLink(ctx context.Context, token string) (*SignInResult, error) {
	email, err := s.sessions.VerifySignInLink(token)
	if err != nil {
		code := "INVALID_TOKEN"
		return nil, errs.NewUnauthorizedError("Sign-in link is invalid or has expired", &code, nil)
	}
	return s.signIn(ctx, email, "", "email")
}

func (s *AuthService) signIn(ctx context.Context, email, name, provider string) (*SignInResult, error) {
	user, created, err := s.findOrCreateUser(ctx, email, name)
	if err != nil {
		return nil, err
	}

	token, session, err := s.sessions.IssueSession(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	if err := s.auditLogs.Record(ctx, model.AuditActionSignIn, user.ID, user.Email, map[string]any{"provider": provider}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to record sign-in audit entry")
	}

	if created {
		s.enqueueWelcome(ctx, user)
	}

	return &SignInResult{Token: token, User: user, Session: session, Created: created}, nil
}

// findOrCreateUser returns the user for email, creating it together with its
// user_created audit entry in one transaction.
func (s *AuthService) findOrCreateUser(ctx context.Context, email, name string) (*model.User, bool, error) {
	email = model.NormalizeEmail(email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if strings.TrimSpace(name) == "" {
		name = defaultUserName
	}

	var user *model.User
	err = s.inTransaction(ctx, func(txCtx context.Context) error {
		// Built per attempt: the driver may rerun this on transient errors.
		user = model.NewUser(email, name, s.now().UTC())
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}
		return s.auditLogs.Record(txCtx, model.AuditActionUserCreated, user.ID, user.Email, nil)
	})
	if err != nil {
		// Lost a race with a concurrent sign-up for the same address.
		if mongo.IsDuplicateKeyError(err) {
			existing, lookupErr := s.users.GetByEmail(ctx, email)
			if lookupErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	return user, true, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, user *model.User) {
	task, err := job.NewWelcomeEmailTask(user.Email, user.Name)
	if err == nil {
		_, err = s.jobs.EnqueueContext(ctx, task)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to enqueue welcome email")
	}
}
