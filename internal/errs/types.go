package errs

import "strings"

// Machine-readable codes shared across the API.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidQuery = "INVALID_QUERY"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeUserNotFound = "USER_NOT_FOUND"
	CodeAPIError     = "API_ERROR"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "limit", "message": "must not exceed 100" }
type FieldError struct {
	// Field is the dotted path of the offending field (e.g. "limit", "meta.ip").
	Field string `json:"field"`

	// Message is the human-readable error message.
	Message string `json:"message"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Value holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction,
// e.g. "redirect to the sign-in page" on AUTH_REQUIRED.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the structured error used by every layer of the application.
//
// It is created where the failure is detected, returned up the call chain as
// a plain error and formatted exactly once by the error responder.
//
// Fields:
//   - Status: HTTP status code.
//   - Code: machine-friendly error code (e.g. "USER_NOT_FOUND").
//   - Message: human-friendly message.
//   - Errors: per-field validation failures, rendered as "details".
//   - Action: optional client instruction.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Errors  []FieldError
	Action  *Action
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, so errors.Is(err, &HTTPError{})
// answers "is this a structured error" regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Status:  e.Status,
		Code:    e.Code,
		Message: message,
		Errors:  e.Errors,
		Action:  e.Action,
	}
}

// ErrorBody is the "error" member of the response envelope.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
	Action  *Action      `json:"action,omitempty"`
}

// ErrorResponse is the full error envelope written to clients.
type ErrorResponse struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
}

// Response renders the error as the client-facing envelope.
// A missing code falls back to API_ERROR.
func (e *HTTPError) Response() ErrorResponse {
	code := e.Code
	if code == "" {
		code = CodeAPIError
	}

	return ErrorResponse{
		OK: false,
		Error: ErrorBody{
			Code:    code,
			Message: e.Message,
			Details: e.Errors,
			Action:  e.Action,
		},
	}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
