// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules defined in struct tags,
// reads URL query strings into typed parameter structs, and converts
// validation failures into field-level errors the client can understand.
package validation
