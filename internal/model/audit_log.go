package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions recorded by the application.
const (
	AuditActionUserCreated = "user_created"
	AuditActionSignIn      = "sign_in"
	AuditActionSignInLink  = "sign_in_link_requested"
)

// AuditLog records something that happened, optionally tied to a user.
type AuditLog struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Action string              `bson:"action" json:"action"`
	UserID *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Email  string              `bson:"email,omitempty" json:"email,omitempty"`
	Meta   map[string]any      `bson:"meta,omitempty" json:"meta,omitempty"`
	At     time.Time           `bson:"at" json:"at"`
}

// NewAuditLog builds an entry for action stamped at now. A zero userID is
// left unset.
func NewAuditLog(action string, userID primitive.ObjectID, email string, meta map[string]any, now time.Time) *AuditLog {
	entry := &AuditLog{
		Action: action,
		Email:  email,
		Meta:   meta,
		At:     now,
	}
	if !userID.IsZero() {
		id := userID
		entry.UserID = &id
	}
	return entry
}
