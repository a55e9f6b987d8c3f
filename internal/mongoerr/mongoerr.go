// Package mongoerr handles MongoDB driver errors.
//
// It recognizes the driver failures a client can act on (duplicate keys,
// missing documents) and converts them into structured HTTP errors with
// readable messages. Everything else becomes a generic 500.
package mongoerr
