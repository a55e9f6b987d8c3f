package middleware

import (
	"errors"
	"net/http"

	"github.com/deppfellow/mongo-starter/internal/errs"
	"github.com/deppfellow/mongo-starter/internal/mongoerr"
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/deppfellow/mongo-starter/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware for the configured origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger emits one "API" line per request with severity by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The global error handler has not written the response yet when a
			// handler returns an error, so take the status from the error.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = ToHTTPError(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics outside the request wrappers into 500 responses.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure adds standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is Echo's HTTPErrorHandler: every error returned by a
// handler or middleware ends up here.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	Respond(c, err, global.server.Config.IsProduction())
}

// ToHTTPError classifies err into the structured error sent to clients.
//
//   - *errs.HTTPError: unchanged
//   - validator / custom validation errors: 400 VALIDATION_ERROR
//   - echo errors (unknown route, wrong method, bad body): their status
//   - MongoDB driver errors: see mongoerr.HandleError
//   - anything else: 500 INTERNAL_SERVER_ERROR
func ToHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if fieldErrors, ok := validation.FieldErrors(err); ok {
		return errs.NewValidationError("Validation failed", fieldErrors)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message := http.StatusText(echoErr.Code)
		if echoErr.Code == http.StatusNotFound {
			message = "Route not found"
		} else if msg, ok := echoErr.Message.(string); ok {
			message = msg
		}

		return &errs.HTTPError{
			Status:  echoErr.Code,
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
		}
	}

	if errors.As(mongoerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// Respond writes err as the {ok:false, error:{...}} envelope.
//
// Server faults are logged at error level, client faults at warn. The
// underlying error is only included in logs outside production.
func Respond(c echo.Context, err error, production bool) {
	httpErr := ToHTTPError(err)

	logger := GetLogger(c)
	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error()
	} else {
		e = logger.Warn()
	}
	if !production {
		e = e.Stack().Err(err)
	}
	e.Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = c.JSON(httpErr.Status, httpErr.Response())
}
