// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/mongo-starter/internal/handler"
	"github.com/deppfellow/mongo-starter/internal/middleware"
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/deppfellow/mongo-starter/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with global middleware, system routes
// and the /api routes.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Sessions)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: request id first so every later layer can log it, the
	// New Relic transaction before anything that reads it from context.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerUserRoutes(api, h, middlewares)
	registerAuditLogRoutes(api, h, middlewares)
	registerAuthRoutes(api, h, middlewares, s.Config.Auth.Provider, s.Config.Server.AuthRateLimit)

	return router
}
