package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/mongo-starter/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by calling Struct(req).
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a field
// that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Empty is the payload for endpoints that take no bound input.
type Empty struct{}

func (*Empty) Validate() error { return nil }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name (query, param or json tag) so error
	// details match what the client sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"query", "param", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})

	return v
}

// Struct validates v against its validator tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// Binding failures become 400 BAD_REQUEST; validation failures become
// 400 VALIDATION_ERROR with one detail per failing field.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request"

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		if fieldErrors, ok := FieldErrors(err); ok {
			return errs.NewValidationError("Validation failed", fieldErrors)
		}
		return err
	}

	return nil
}

// FieldErrors converts a validator or custom validation error into
// field-level errors. ok is false for any other error.
func FieldErrors(err error) ([]errs.FieldError, bool) {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		fieldErrors := make([]errs.FieldError, 0, len(custom))
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Message: e.Message})
		}
		return fieldErrors, true
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:   fieldPath(e),
			Message: message(e),
		})
	}
	return fieldErrors, true
}

// fieldPath returns the dotted path below the top-level struct,
// e.g. "ListQuery.meta.ip" -> "meta.ip".
func fieldPath(e validator.FieldError) string {
	namespace := e.Namespace()
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return e.Field()
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"

	case "min":
		// min means length for strings and value for numbers.
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())

	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return fmt.Sprintf("must not exceed %s", e.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())

	case "email":
		return "must be a valid email address"

	case "objectid":
		return "Invalid id format"

	case "url":
		return "must be a valid URL"

	case "dive":
		return "some items are invalid"

	default:
		if e.Param() != "" {
			return fmt.Sprintf("failed %s:%s", e.Tag(), e.Param())
		}
		return fmt.Sprintf("failed %s", e.Tag())
	}
}
