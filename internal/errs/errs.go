// Package errs defines the structured error type carried from the point of
// failure up to the HTTP boundary.
//
// Its purpose is to give every failure a status, a machine-readable code and a
// human message (plus optional field-level details) so the client always
// receives the same error envelope:
//
//	{ "ok": false, "error": { "code": "...", "message": "...", "details": [...] } }
package errs
