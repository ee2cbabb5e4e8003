// Package errors provides structured error types for gfalook.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the pipeline's failure taxonomy:
//   - INTEGRITY_*: data-integrity failures in the loaded graph (fatal)
//   - CONFIG_*: invalid or conflicting options, caught before computation
//   - NOT_FOUND_*: a referenced resource does not exist
//   - INTERNAL_*: unexpected internal errors
//
// Degenerate-input conditions (too few paths to cluster, empty path set
// after filtering) are deliberately NOT errors; the pipeline handles
// them with a logged fallback.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeIntegrity, "path %q references unknown segment %q", path, seg)
//	if errors.Is(err, errors.ErrCodeIntegrity) {
//	    // fatal: abort the run
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConfigFile, origErr, "failed to read %s", file)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Data-integrity errors: the graph contradicts itself. Always fatal.
	ErrCodeIntegrity      Code = "INTEGRITY_ERROR"
	ErrCodeUnknownSegment Code = "INTEGRITY_UNKNOWN_SEGMENT"
	ErrCodeBadRecord      Code = "INTEGRITY_BAD_RECORD"

	// Configuration errors: rejected before any computation starts.
	ErrCodeConfig         Code = "CONFIG_ERROR"
	ErrCodeConfigConflict Code = "CONFIG_CONFLICT"
	ErrCodeConfigRange    Code = "CONFIG_BAD_RANGE"
	ErrCodeConfigPalette  Code = "CONFIG_BAD_PALETTE"
	ErrCodeConfigFile     Code = "CONFIG_BAD_FILE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodePathNotFound Code = "PATH_NOT_FOUND"

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
