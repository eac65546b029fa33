// Package errors provides structured error types for the bodega application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND / AMBIGUOUS_*: Resource lookup failures
//   - DEPENDENCY_* / SELF_*: Dependency graph constraint violations
//   - STORAGE_* / LOCK_*: Filesystem-level failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTicketNotFound, "no ticket found matching %q", partial)
//	if errors.Is(err, errors.ErrCodeTicketNotFound) {
//	    // Handle missing ticket
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "write ticket %s", id)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidID       Code = "INVALID_ID"
	ErrCodeInvalidStatus   Code = "INVALID_STATUS"
	ErrCodeInvalidType     Code = "INVALID_TYPE"
	ErrCodeInvalidPriority Code = "INVALID_PRIORITY"
	ErrCodeInvalidDuration Code = "INVALID_DURATION"

	// Resource lookup errors
	ErrCodeTicketNotFound Code = "TICKET_NOT_FOUND"
	ErrCodeAmbiguousID    Code = "AMBIGUOUS_ID"
	ErrCodeTicketExists   Code = "TICKET_EXISTS"

	// Dependency graph constraint violations
	ErrCodeSelfDependency  Code = "SELF_DEPENDENCY"
	ErrCodeDependencyCycle Code = "DEPENDENCY_CYCLE"

	// Repository and storage errors
	ErrCodeNotARepository   Code = "NOT_A_REPOSITORY"
	ErrCodeRepositoryExists Code = "REPOSITORY_EXISTS"
	ErrCodeStorage          Code = "STORAGE_ERROR"
	ErrCodeLockTimeout      Code = "LOCK_TIMEOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
