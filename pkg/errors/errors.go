// Package errors provides structured error types for the spritesheet tool.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP layout service
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Layout-engine failures each have their own code so callers can react to a
// specific condition (for example, retry with a larger maximum texture size
// after CANVAS_TOO_LARGE). Every layout error is fatal for the current run;
// the engine is re-run from scratch after a configuration fix.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDoesNotFit, "%s (%dx%d) does not fit", name, w, h)
//	if errors.Is(err, errors.ErrCodeDoesNotFit) {
//	    // Handle overflow
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecodeFailed, origErr, "couldn't read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout configuration errors
	ErrCodeUnsupportedSortMethod    Code = "UNSUPPORTED_SORT_METHOD"
	ErrCodeUnsupportedPackAlgorithm Code = "UNSUPPORTED_PACK_ALGORITHM"
	ErrCodeMissingCanvasSize        Code = "MISSING_CANVAS_SIZE"

	// Layout failures
	ErrCodeDoesNotFit              Code = "DOES_NOT_FIT"
	ErrCodeIndeterminateCanvasSize Code = "INDETERMINATE_CANVAS_SIZE"
	ErrCodeCanvasTooLarge          Code = "CANVAS_TOO_LARGE"
	ErrCodeOverlapViolation        Code = "OVERLAP_VIOLATION"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeDecodeFailed Code = "DECODE_FAILED"
	ErrCodeEncodeFailed Code = "ENCODE_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsConfiguration reports whether err was caused by a bad option value
// rather than by the input images themselves.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnsupportedSortMethod,
		ErrCodeUnsupportedPackAlgorithm,
		ErrCodeMissingCanvasSize,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath:
		return true
	}
	return false
}
