// Package errors provides structured error types for hexwalk.
//
// The geometry core (hexgrid, walk, smooth, plot) panics on precondition
// violations. Everything around it (configuration, sinks, caches, the
// archive, the preview server) returns errors built here, so the CLI can
// map them to user-facing messages and exit codes.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *NOT_FOUND: Missing resources
//   - STORAGE_ERROR: Cache or archive backends
//   - INTERNAL_ERROR, UNSUPPORTED: Everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidParameters, "keep fraction %v outside [0,1]", f)
//	if errors.Is(err, errors.ErrCodeInvalidParameters) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "reserve export number")
//
// [ExitCode] maps an error to the process exit status of the CLI.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidParameters Code = "INVALID_PARAMETERS"
	ErrCodeInvalidDrawing    Code = "INVALID_DRAWING"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeStorage Code = "STORAGE_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Exit statuses returned by [ExitCode].
const (
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// Error carries a Code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message" or "CODE: message: cause".
func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
func IsInvalid(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), "INVALID_")
}

// UserMessage drops the code prefix: the message, then the cause if any.
// Errors without a code are returned as is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// ExitCode maps err to a process exit status: 0 for nil, 130 for
// cancellation, 2 for invalid input and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case IsInvalid(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}
