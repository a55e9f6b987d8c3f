package middleware

import (
	"github.com/deppfellow/mongo-starter/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Database        *DatabaseMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components. resolver backs the
// authenticated request wrapper.
func NewMiddlewares(s *server.Server, resolver SessionResolver) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Database:        NewDatabaseMiddleware(s, resolver),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
