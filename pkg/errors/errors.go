// Package errors provides structured error types for umlgraph.
//
// Three categories matter to callers:
//   - Validation errors (ErrCodeInvalidInput): a relationship input has the
//     wrong shape. The Field names the offending input.
//   - Configuration errors (ErrCodeInvalidOption): an option value is not
//     recognized. Most such errors are reported and then ignored in favour
//     of the default.
//   - Collaborator errors: an external renderer failed. These are returned as
//     [*CollaboratorError] so the attempted request and raw response survive.
//
// # Usage
//
//	err := errors.Validation("parents", "entry %d has %d elements, want 2", i, n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // reject the request
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidOption Code = "INVALID_OPTION"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// External renderer errors
	ErrCodeCollaborator Code = "COLLABORATOR_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Field   string // Offending input field (optional)
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Validation creates an ErrCodeInvalidInput error for the named input field.
func Validation(field, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidInput,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Configuration creates an ErrCodeInvalidOption error for the named option.
func Configuration(option, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidOption,
		Field:   option,
		Message: fmt.Sprintf(format, args...),
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// A *CollaboratorError matches ErrCodeCollaborator.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Field != "" {
			return e.Field + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}

// CollaboratorError describes a failed call to an external renderer.
// Request and Response hold what was sent and what came back, verbatim,
// so integration problems can be diagnosed without re-running the call.
type CollaboratorError struct {
	Collaborator string // e.g. "plantuml-server", "plantuml-local", "graphviz"
	Request      string // URL or command line that was attempted
	StatusCode   int    // HTTP status, 0 when not applicable
	Response     []byte // raw response body or stderr
	Cause        error
}

// Error implements the error interface.
func (e *CollaboratorError) Error() string {
	msg := fmt.Sprintf("%s: %s failed", ErrCodeCollaborator, e.Collaborator)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *CollaboratorError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *CollaboratorError) Code() Code {
	return ErrCodeCollaborator
}
