package service

import (
	"net/http"

	"github.com/deppfellow/mongo-starter/internal/lib/job"
	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/repository"
	"github.com/deppfellow/mongo-starter/internal/server"
)

// SessionResolver resolves the caller's session from a request.
// It returns nil without error when the request carries no valid session.
type SessionResolver interface {
	ResolveSession(r *http.Request) (*model.Session, error)
}

type Services struct {
	Auth     *AuthService
	User     *UserService
	AuditLog *AuditLogService
	Sessions SessionResolver
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	sessionManager := NewSessionManager(s.Config.Auth)
	auditLogService := NewAuditLogService(repos)

	var resolver SessionResolver = sessionManager
	if s.Config.Auth.Provider == "clerk" {
		resolver = NewClerkSessions(s.Config.Auth.SecretKey, s.Logger)
	}

	return &Services{
		Job:      s.Job,
		Auth:     NewAuthService(s, repos, auditLogService, sessionManager),
		User:     NewUserService(repos),
		AuditLog: auditLogService,
		Sessions: resolver,
	}, nil
}
