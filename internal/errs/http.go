package errs

import (
	"net/http"
)

func codeOr(code *string, status int) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401 HTTPError.
//
// code defaults to "UNAUTHORIZED" when nil.
func NewUnauthorizedError(message string, code *string, action *Action) *HTTPError {
	return &HTTPError{
		Status:  http.StatusUnauthorized,
		Code:    codeOr(code, http.StatusUnauthorized),
		Message: message,
		Action:  action,
	}
}

// NewAuthRequiredError is the 401 returned when a private route is called
// without a resolvable session. It points the client at the sign-in page.
func NewAuthRequiredError(signInPath string) *HTTPError {
	code := CodeAuthRequired

	var action *Action
	if signInPath != "" {
		action = &Action{
			Type:    ActionTypeRedirect,
			Message: "Sign in to continue",
			Value:   signInPath,
		}
	}

	return NewUnauthorizedError("Unauthorized", &code, action)
}

// NewForbiddenError creates a 403 HTTPError.
func NewForbiddenError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusForbidden,
		Code:    codeOr(nil, http.StatusForbidden),
		Message: message,
	}
}

// NewBadRequestError creates a 400 HTTPError.
//
// This supports extra payload:
//   - code: optional custom code (defaults to "BAD_REQUEST")
//   - errors: optional field errors
//   - action: optional client instruction
func NewBadRequestError(message string, code *string, errors []FieldError, action *Action) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Code:    codeOr(code, http.StatusBadRequest),
		Message: message,
		Errors:  errors,
		Action:  action,
	}
}

// NewValidationError creates the 400 VALIDATION_ERROR raised when input fails
// its schema. Each FieldError names one failing field.
func NewValidationError(message string, errors []FieldError) *HTTPError {
	code := CodeValidation
	return NewBadRequestError(message, &code, errors, nil)
}

// NewInvalidQueryError creates the 400 INVALID_QUERY raised when the request
// URL or its query string cannot be read at all.
func NewInvalidQueryError() *HTTPError {
	code := CodeInvalidQuery
	return NewBadRequestError("Invalid URL or query parameters", &code, nil, nil)
}

// NewNotFoundError creates a 404 HTTPError. code defaults to "NOT_FOUND".
func NewNotFoundError(message string, code *string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Code:    codeOr(code, http.StatusNotFound),
		Message: message,
	}
}

// NewConflictError creates a 409 HTTPError. code defaults to "CONFLICT".
func NewConflictError(message string, code *string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusConflict,
		Code:    codeOr(code, http.StatusConflict),
		Message: message,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusTooManyRequests,
		Code:    codeOr(nil, http.StatusTooManyRequests),
		Message: message,
	}
}

// NewInternalServerError creates a 500 HTTPError.
//
// The message is the generic status text, never the underlying error: clients
// get no internal detail.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    codeOr(nil, http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
