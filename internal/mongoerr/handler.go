package mongoerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/mongo-starter/internal/errs"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code categorizes a driver error.
type Code string

const (
	DuplicateKey Code = "duplicate_key"
	NoDocuments  Code = "no_documents"
	Other        Code = "other"
)

// ErrCode reports the category of err.
func ErrCode(err error) Code {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case errors.Is(err, mongo.ErrNoDocuments):
		return NoDocuments
	default:
		return Other
	}
}

// E11000 duplicate key error collection: app.users index: unique_users_email dup key: { email: "a@b.c" }
var duplicateKeyRegex = regexp.MustCompile(`collection: [^.\s]+\.(\S+) index: (\S+)`)

// duplicateKeyDetails extracts the collection and index names from a
// duplicate key error message.
func duplicateKeyDetails(err error) (collection, index string) {
	matches := duplicateKeyRegex.FindStringSubmatch(err.Error())
	if len(matches) == 3 {
		return matches[1], matches[2]
	}
	return "", ""
}

// generateErrorCode builds <ENTITY>_<ACTION> codes, e.g. users + duplicate
// key => USER_ALREADY_EXISTS.
func generateErrorCode(collection string, code Code) string {
	domain := strings.ToUpper(singular(collection))
	if domain == "" {
		domain = "RECORD"
	}

	action := "ERROR"
	switch code {
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	case NoDocuments:
		action = "NOT_FOUND"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func singular(name string) string {
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		return name[:len(name)-1]
	}
	return name
}

// extractFieldFromIndex infers the field from an index name.
//
// Supported conventions:
//
//	unique_<collection>_<field>   unique_users_email -> email
//	<field>_1                     email_1            -> email  (driver default)
func extractFieldFromIndex(index string) string {
	if strings.HasPrefix(index, "unique_") {
		parts := strings.Split(index, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if strings.HasSuffix(index, "_1") || strings.HasSuffix(index, "_-1") {
		parts := strings.Split(index, "_")
		if len(parts) == 2 {
			return parts[0]
		}
	}

	return ""
}

// humanizeText converts snake_case or camelCase-free identifiers into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a driver error into an application error.
//
//   - *errs.HTTPError: returned unchanged
//   - duplicate key: 409 <ENTITY>_ALREADY_EXISTS
//   - mongo.ErrNoDocuments: 404 NOT_FOUND
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch ErrCode(err) {
	case DuplicateKey:
		collection, index := duplicateKeyDetails(err)
		code := generateErrorCode(collection, DuplicateKey)

		entity := humanizeText(singular(collection))
		if entity == "" {
			entity = "Record"
		}

		message := fmt.Sprintf("A %s with this identifier already exists", entity)
		if field := extractFieldFromIndex(index); field != "" {
			message = fmt.Sprintf("A %s with this %s already exists", entity, humanizeText(field))
		}

		return errs.NewConflictError(message, &code)

	case NoDocuments:
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewInternalServerError()
}
