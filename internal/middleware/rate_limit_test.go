package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newLimitedServer(perSecond float64) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		Respond(c, err, true)
	}

	limiter := NewRateLimitMiddleware(&server.Server{})
	e.POST("/api/auth/credentials", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, limiter.Limit(perSecond))
	return e
}

func post(e *echo.Echo, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/credentials", nil)
	req.RemoteAddr = ip + ":40000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestLimitRejectsBurstPerIP(t *testing.T) {
	e := newLimitedServer(1)

	assert.Equal(t, http.StatusNoContent, post(e, "203.0.113.7"))
	assert.Equal(t, http.StatusNoContent, post(e, "203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, post(e, "203.0.113.7"))

	assert.Equal(t, http.StatusNoContent, post(e, "198.51.100.4"))
}

func TestLimitDisabled(t *testing.T) {
	e := newLimitedServer(0)

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusNoContent, post(e, "203.0.113.7"))
	}
}
