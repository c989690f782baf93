// Package common defines sentinel errors and small helpers shared by the
// backend adapters, the client services and the terminal screens. Callers
// should match errors with errors.Is.
package common

import "errors"

var (
	// Validation errors are detected before any request is issued.
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("no active session")
	ErrInvalidToken = errors.New("invalid token")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Backend transport errors.
	ErrUnavailable = errors.New("backend unavailable")

	// Device-level errors.
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnsupportedMedia = errors.New("unsupported media")

	ErrNotImplemented = errors.New("not implemented")
)
