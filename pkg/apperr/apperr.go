// Package apperr defines the status-coded error type every controller and
// service uses. An *Error carries the HTTP status to respond with and a
// client-safe message; anything that is not an *Error is treated as an
// unexpected 500 by the responder in pkg/response.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a client-visible error with an HTTP status code.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds an *Error with an arbitrary status code.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation marks malformed or missing input (400).
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Auth marks a missing/invalid/expired token or bad credentials (401).
func Auth(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden marks an authenticated caller without the required role (403).
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound marks a missing resource (404).
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict marks a duplicate unique field. The original API reported these
// as 400, so Conflict keeps that status rather than 409.
func Conflict(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Server marks an unexpected or infrastructure failure (500).
func Server(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// From extracts an *Error from err, or nil when err carries no status.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	if e := From(err); e != nil {
		return e.Status
	}
	return http.StatusInternalServerError
}
