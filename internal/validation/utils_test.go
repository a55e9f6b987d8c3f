package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type objectIDRequest struct {
	ID string `param:"id" validate:"required,objectid"`
}

func TestObjectIDValidation(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"65a1f0c2e4b0a1b2c3d4e5f6", true},
		{"65A1F0C2E4B0A1B2C3D4E5F6", true},
		{"65a1f0c2e4b0a1b2c3d4e5f", false},
		{"not-an-id", false},
		{"zza1f0c2e4b0a1b2c3d4e5f6", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := Struct(&objectIDRequest{ID: tt.id})
			if tt.valid {
				assert.NoError(t, err)
				return
			}

			fieldErrors, ok := FieldErrors(err)
			require.True(t, ok)
			require.Len(t, fieldErrors, 1)
			assert.Equal(t, "id", fieldErrors[0].Field)
			assert.Equal(t, "Invalid id format", fieldErrors[0].Message)
		})
	}
}

func TestFieldErrorsNestedPath(t *testing.T) {
	type meta struct {
		IP string `json:"ip" validate:"required"`
	}
	type payload struct {
		Email string `json:"email" validate:"required,email"`
		Meta  meta   `json:"meta"`
	}

	fieldErrors, ok := FieldErrors(Struct(&payload{Email: "nope"}))
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"email", "meta.ip"}, []string{fieldErrors[0].Field, fieldErrors[1].Field})
}

func TestFieldErrorsCustom(t *testing.T) {
	fieldErrors, ok := FieldErrors(CustomValidationErrors{{Field: "name", Message: "is reserved"}})
	require.True(t, ok)
	assert.Equal(t, "name", fieldErrors[0].Field)

	_, ok = FieldErrors(assert.AnError)
	assert.False(t, ok)
}
