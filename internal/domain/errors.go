// Package domain defines core types, interfaces, and errors for the gateway.
package domain

import "fmt"

// ValidationError indicates a malformed request: the caller's fault, always
// a 400, raised before any remote call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UserError indicates the remote SQL engine rejected the statement itself
// (syntax error, unknown table, constraint violation). The message originates
// from the remote engine and is safe to surface verbatim.
type UserError struct {
	Message    string
	RawDetails []string
}

func (e *UserError) Error() string { return e.Message }

// SystemError indicates an authentication, transport, or unclassified remote
// failure. The message is for server-side logs only; responses carry a
// generic message instead.
type SystemError struct {
	Message    string
	StatusCode int // 0 when the failure never reached HTTP status
	RawDetails []string
}

func (e *SystemError) Error() string { return e.Message }

// NotFoundError indicates a stored resource (saved query, database record)
// was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate resource name).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrUser creates a UserError carrying the remote engine's messages.
func ErrUser(message string, details []string) *UserError {
	return &UserError{Message: message, RawDetails: details}
}

// ErrSystem creates a SystemError with a formatted message.
func ErrSystem(format string, args ...interface{}) *SystemError {
	return &SystemError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
