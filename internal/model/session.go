package model

import "time"

// Session represents an authenticated caller. It is resolved per request by
// the auth layer; handlers only read it.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expires"`
}
