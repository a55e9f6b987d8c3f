package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/deppfellow/mongo-starter/internal/errs"
	"github.com/deppfellow/mongo-starter/internal/pagination"
)

var digitsRegex = regexp.MustCompile(`^\d+$`)

// PaginationQuery is the schema for page/limit query parameters.
// Absent values stay nil and fall back to the pagination defaults.
type PaginationQuery struct {
	Page  *int `query:"page" validate:"omitempty,min=1"`
	Limit *int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Params returns the values as raw pagination input.
func (q PaginationQuery) Params() pagination.Params {
	params := pagination.Params{Page: pagination.DefaultPage, Limit: pagination.DefaultLimit}
	if q.Page != nil {
		params.Page = *q.Page
	}
	if q.Limit != nil {
		params.Limit = *q.Limit
	}
	return params
}

// AuditLogQuery filters the audit log listing by action.
type AuditLogQuery struct {
	Page   *int    `query:"page" validate:"omitempty,min=1"`
	Limit  *int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Action *string `query:"action" validate:"omitempty,oneof=user_created sign_in sign_in_link_requested"`
}

func (q AuditLogQuery) Params() pagination.Params {
	return PaginationQuery{Page: q.Page, Limit: q.Limit}.Params()
}

// ParseQuery reads the query string of rawURL into dst and validates it.
//
// dst must be a pointer to a struct whose fields carry `query` tags. Every
// query value made only of digits is read as an integer (so "007" becomes 7);
// anything else stays a string. Repeated keys keep their last value.
//
// Errors:
//   - 400 VALIDATION_ERROR when a value has the wrong type or breaks a
//     validator rule; details name each failing field
//   - 400 INVALID_QUERY when the URL or query string cannot be read
func ParseQuery(rawURL string, dst any) (err error) {
	defer func() {
		if recover() != nil {
			err = errs.NewInvalidQueryError()
		}
	}()

	params, err := queryParams(rawURL)
	if err != nil {
		return errs.NewInvalidQueryError()
	}

	fieldErrors, err := assign(dst, params)
	if err != nil {
		return errs.NewInvalidQueryError()
	}

	if err := Struct(dst); err != nil {
		validationErrors, ok := FieldErrors(err)
		if !ok {
			return errs.NewInvalidQueryError()
		}

		reported := make(map[string]bool, len(fieldErrors))
		for _, fe := range fieldErrors {
			reported[fe.Field] = true
		}
		for _, fe := range validationErrors {
			if !reported[fe.Field] {
				fieldErrors = append(fieldErrors, fe)
			}
		}
	}

	if len(fieldErrors) > 0 {
		return errs.NewValidationError("Invalid query parameters", fieldErrors)
	}

	return nil
}

// queryParams extracts the query string as a flat map with digit-only values
// coerced to int.
func queryParams(rawURL string) (map[string]any, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, err
	}

	params := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		params[key] = coerce(vals[len(vals)-1])
	}
	return params, nil
}

// bigNumber is a digit-only value that does not fit in an int.
type bigNumber string

func coerce(value string) any {
	if digitsRegex.MatchString(value) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return bigNumber(value)
		}
		return n
	}
	return value
}

var errInvalidTarget = errors.New("query target must be a non-nil pointer to a struct")

// assign copies params into the `query`-tagged fields of dst. Values of the
// wrong type are reported as field errors and leave the field untouched.
func assign(dst any, params map[string]any) ([]errs.FieldError, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, errInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	var fieldErrors []errs.FieldError
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}

		value, ok := params[name]
		if !ok {
			continue
		}

		target := rv.Field(i)
		if target.Kind() == reflect.Pointer {
			ptr := reflect.New(target.Type().Elem())
			if msg := set(ptr.Elem(), value); msg != "" {
				fieldErrors = append(fieldErrors, errs.FieldError{Field: name, Message: msg})
				continue
			}
			target.Set(ptr)
			continue
		}

		if msg := set(target, value); msg != "" {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: name, Message: msg})
		}
	}

	return fieldErrors, nil
}

// set stores value in target and returns a message when the types disagree.
func set(target reflect.Value, value any) string {
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if _, ok := value.(bigNumber); ok {
			return "Number is too large"
		}
		n, ok := value.(int)
		if !ok {
			return fmt.Sprintf("Expected number, received %s", typeName(value))
		}
		if target.OverflowInt(int64(n)) {
			return "Number is too large"
		}
		target.SetInt(int64(n))

	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("Expected string, received %s", typeName(value))
		}
		target.SetString(s)

	default:
		panic(fmt.Sprintf("unsupported query field kind %s", target.Kind()))
	}

	return ""
}

func typeName(value any) string {
	switch value.(type) {
	case int, bigNumber:
		return "number"
	}
	return "string"
}
