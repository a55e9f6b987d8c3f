package repository

import (
	"github.com/deppfellow/mongo-starter/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users     *UserRepository
	AuditLogs *AuditLogRepository
}

// NewRepositories constructs the repository container on the shared database.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(s.DB),
		AuditLogs: NewAuditLogRepository(s.DB),
	}
}
