// Package errors provides structured error types for the kle toolchain.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the decoder, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Decode codes describe why a raw layout document was rejected:
//   - INVALID_ALIGNMENT, TOO_MANY_LEGENDS, INVALID_COLOR, INVALID_SIZE
//   - UNEXPECTED_ITEM_TYPE, MALFORMED_INPUT
//
// The remaining codes are used by the outer layers:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - NETWORK_*: Cache backend connectivity
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to reach %s", url)
//
// Domain errors that carry their own position information (such as
// kle.DecodeError) participate by implementing a Code() method.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Decode errors
	ErrCodeInvalidAlignment   Code = "INVALID_ALIGNMENT"
	ErrCodeTooManyLegends     Code = "TOO_MANY_LEGENDS"
	ErrCodeInvalidColor       Code = "INVALID_COLOR"
	ErrCodeUnexpectedItemType Code = "UNEXPECTED_ITEM_TYPE"
	ErrCodeInvalidSize        Code = "INVALID_SIZE"
	ErrCodeMalformedInput     Code = "MALFORMED_INPUT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeTooLarge      Code = "TOO_LARGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// decodeCodes lists the codes produced by the layout decoder.
var decodeCodes = map[Code]bool{
	ErrCodeInvalidAlignment:   true,
	ErrCodeTooManyLegends:     true,
	ErrCodeInvalidColor:       true,
	ErrCodeUnexpectedItemType: true,
	ErrCodeInvalidSize:        true,
	ErrCodeMalformedInput:     true,
}

// IsDecodeCode reports whether code describes a rejected layout document
// rather than a failure of the surrounding tooling.
func IsDecodeCode(code Code) bool {
	return decodeCodes[code]
}

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

// coder is implemented by domain errors that carry a code without being an *Error.
type coder interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for the outermost coded error.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
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
