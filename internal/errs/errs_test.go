package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsDefaultCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflictError("dup", nil), http.StatusConflict, "CONFLICT"},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden, "FORBIDDEN"},
		{"too many", NewTooManyRequestsError("slow"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"validation", NewValidationError("Validation failed", nil), http.StatusBadRequest, CodeValidation},
		{"invalid query", NewInvalidQueryError(), http.StatusBadRequest, CodeInvalidQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestNewAuthRequiredError(t *testing.T) {
	err := NewAuthRequiredError("/login")

	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, CodeAuthRequired, err.Code)
	assert.Equal(t, "Unauthorized", err.Message)
	require.NotNil(t, err.Action)
	assert.Equal(t, "/login", err.Action.Value)

	assert.Nil(t, NewAuthRequiredError("").Action)
}

func TestResponseEnvelope(t *testing.T) {
	err := NewValidationError("Invalid query parameters", []FieldError{{Field: "limit", Message: "must not exceed 100"}})

	body, marshalErr := json.Marshal(err.Response())
	require.NoError(t, marshalErr)

	assert.JSONEq(t, `{
		"ok": false,
		"error": {
			"code": "VALIDATION_ERROR",
			"message": "Invalid query parameters",
			"details": [{"field": "limit", "message": "must not exceed 100"}]
		}
	}`, string(body))
}

func TestResponseDefaultsCode(t *testing.T) {
	resp := (&HTTPError{Status: http.StatusTeapot, Message: "short and stout"}).Response()
	assert.Equal(t, CodeAPIError, resp.Error.Code)
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewNotFoundError("User not found", nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "User not found", httpErr.Error())
}

func TestWithMessage(t *testing.T) {
	original := NewNotFoundError("Resource not found", nil)
	renamed := original.WithMessage("Audit entry not found")

	assert.Equal(t, "Resource not found", original.Message)
	assert.Equal(t, "Audit entry not found", renamed.Message)
	assert.Equal(t, original.Code, renamed.Code)
}
