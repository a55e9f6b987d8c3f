package mongoerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/mongo-starter/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKeyError(collection, index string) error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Index:   0,
			Code:    11000,
			Message: fmt.Sprintf(`E11000 duplicate key error collection: starter.%s index: %s dup key: { email: "ada@example.com" }`, collection, index),
		}},
	}
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	return httpErr
}

func TestHandleErrorDuplicateKey(t *testing.T) {
	err := fmt.Errorf("failed to create user: %w", duplicateKeyError("users", "unique_users_email"))

	assert.Equal(t, DuplicateKey, ErrCode(err))

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
}

func TestHandleErrorDuplicateKeyDefaultIndexName(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(duplicateKeyError("auditlogs", "action_1")))

	assert.Equal(t, "AUDITLOG_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Auditlog with this Action already exists", httpErr.Message)
}

func TestHandleErrorNoDocuments(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("lookup: %w", mongo.ErrNoDocuments)))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
}

func TestHandleErrorPassesStructuredErrors(t *testing.T) {
	code := errs.CodeUserNotFound
	original := errs.NewNotFoundError("User not found", &code)

	assert.Same(t, original, asHTTPError(t, HandleError(original)))
}

func TestHandleErrorUnknown(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("socket closed")))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
	assert.Equal(t, Other, ErrCode(errors.New("socket closed")))
}

func TestExtractFieldFromIndex(t *testing.T) {
	assert.Equal(t, "email", extractFieldFromIndex("unique_users_email"))
	assert.Equal(t, "email", extractFieldFromIndex("email_1"))
	assert.Equal(t, "", extractFieldFromIndex("compound_idx"))
}
