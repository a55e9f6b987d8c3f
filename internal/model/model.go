// Package model holds the documents persisted in MongoDB and the session
// value handed from the auth layer to handlers.
package model

// Collection names.
const (
	UsersCollection     = "users"
	AuditLogsCollection = "auditlogs"
)
