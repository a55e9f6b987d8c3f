package router

import (
	"net/http"

	"github.com/deppfellow/mongo-starter/internal/handler"
	"github.com/deppfellow/mongo-starter/internal/middleware"
	"github.com/deppfellow/mongo-starter/internal/validation"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	private := m.Database.WithPrivateDB

	api.GET("/users", private(handler.Handle(h.User.Handler, h.User.GetUsers, http.StatusOK, &validation.Empty{})))
	api.GET("/users/:id", private(handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK, &handler.GetUserRequest{})))
}

func registerAuditLogRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	api.GET("/audit-logs", m.Database.WithPrivateDB(
		handler.Handle(h.AuditLog.Handler, h.AuditLog.GetAuditLogs, http.StatusOK, &validation.Empty{}),
	))
}

// registerAuthRoutes mounts the sign-in endpoints. With the clerk provider
// Clerk issues sessions itself, so only the session lookup is exposed.
func registerAuthRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares, provider string, rateLimit float64) {
	auth := api.Group("/auth")

	auth.GET("/session", m.Database.WithPrivateDB(
		handler.Handle(h.Auth.Handler, h.Auth.GetSession, http.StatusOK, &validation.Empty{}),
	))

	if provider == "clerk" {
		return
	}

	limited := auth.Group("", m.RateLimit.Limit(rateLimit))
	db := m.Database.WithDB

	limited.POST("/credentials", db(handler.Handle(h.Auth.Handler, h.Auth.SignInWithCredentials, http.StatusOK, &handler.CredentialsRequest{})))
	limited.POST("/email", db(handler.Handle(h.Auth.Handler, h.Auth.RequestEmailLink, http.StatusAccepted, &handler.EmailSignInRequest{})))
	limited.GET("/callback/email", db(handler.Handle(h.Auth.Handler, h.Auth.EmailCallback, http.StatusOK, &handler.EmailCallbackRequest{})))
}
