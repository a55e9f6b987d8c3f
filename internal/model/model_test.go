package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewUserNormalizes(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := NewUser("  Ada@Example.COM ", "  Ada Lovelace ", now)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, now, user.CreatedAt)
	assert.Equal(t, now, user.UpdatedAt)
	assert.True(t, user.ID.IsZero())
}

func TestNewAuditLog(t *testing.T) {
	now := time.Now().UTC()

	anonymous := NewAuditLog(AuditActionSignInLink, primitive.NilObjectID, "ada@example.com", nil, now)
	assert.Nil(t, anonymous.UserID)
	assert.Equal(t, now, anonymous.At)

	id := primitive.NewObjectID()
	entry := NewAuditLog(AuditActionSignIn, id, "ada@example.com", map[string]any{"provider": "email"}, now)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, id, *entry.UserID)
	assert.Equal(t, "email", entry.Meta["provider"])
}
