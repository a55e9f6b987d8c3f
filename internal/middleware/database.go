package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deppfellow/mongo-starter/internal/errs"
	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionKey stores the resolved *model.Session in Echo context.
const SessionKey = "session"

// SessionResolver resolves the caller's session; nil means unauthenticated.
type SessionResolver interface {
	ResolveSession(r *http.Request) (*model.Session, error)
}

type connector interface {
	Client(ctx context.Context) (*mongo.Client, error)
}

// DatabaseMiddleware wraps route handlers so they run with the shared MongoDB
// connection established, optionally behind an authenticated session.
type DatabaseMiddleware struct {
	db         connector
	resolver   SessionResolver
	signInPath string
	production bool
}

func NewDatabaseMiddleware(s *server.Server, resolver SessionResolver) *DatabaseMiddleware {
	return &DatabaseMiddleware{
		db:         s.DB,
		resolver:   resolver,
		signInPath: s.Config.Auth.SignInPath,
		production: s.Config.IsProduction(),
	}
}

// WithDB connects to the store if needed, then calls next. Errors are left
// to the global error handler.
func (m *DatabaseMiddleware) WithDB(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := m.db.Client(c.Request().Context()); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		return next(c)
	}
}

// WithPrivateDB connects to the store, requires a session and calls next.
//
// Requests without a session get 401 AUTH_REQUIRED and next is never called.
// Every error from this chain, panics from next included, is written as the
// error envelope here; the wrapper itself always returns nil.
func (m *DatabaseMiddleware) WithPrivateDB(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				Respond(c, fmt.Errorf("panic in handler: %w", err), m.production)
			}
		}()

		if err := m.private(c, next); err != nil {
			Respond(c, err, m.production)
		}
		return nil
	}
}

func (m *DatabaseMiddleware) private(c echo.Context, next echo.HandlerFunc) error {
	if _, err := m.db.Client(c.Request().Context()); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	session, err := m.resolver.ResolveSession(c.Request())
	if err != nil {
		return fmt.Errorf("failed to resolve session: %w", err)
	}
	if session == nil {
		return errs.NewAuthRequiredError(m.signInPath)
	}

	c.Set(SessionKey, session)
	c.Set(UserIDKey, session.UserID)

	logger := GetLogger(c).With().Str("user_id", session.UserID).Logger()
	c.Set(LoggerKey, &logger)

	return next(c)
}

// GetSession returns the session stored by WithPrivateDB, or nil.
func GetSession(c echo.Context) *model.Session {
	if session, ok := c.Get(SessionKey).(*model.Session); ok {
		return session
	}
	return nil
}
