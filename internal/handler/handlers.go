package handler

import (
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/deppfellow/mongo-starter/internal/service"
)

// Handlers groups all HTTP handlers so routing receives a single value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	User     *UserHandler
	Auth     *AuthHandler
	AuditLog *AuditLogHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		User:     NewUserHandler(s, services.User),
		Auth:     NewAuthHandler(s, services.Auth),
		AuditLog: NewAuditLogHandler(s, services.AuditLog),
	}
}
