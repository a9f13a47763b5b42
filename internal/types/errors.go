package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for element suite errors.
type ErrorCode string

// Settings error codes
const (
	SETTINGS_LOAD_FAILED       ErrorCode = "SETTINGS_LOAD_FAILED"
	SETTINGS_PARSE_FAILED      ErrorCode = "SETTINGS_PARSE_FAILED"
	SETTINGS_VALIDATION_FAILED ErrorCode = "SETTINGS_VALIDATION_FAILED"
)

// Frame error codes
const (
	FRAME_MISSING       ErrorCode = "FRAME_MISSING"
	FRAME_INPUT_INVALID ErrorCode = "FRAME_INPUT_INVALID"
)

// Element error codes
const (
	ELEMENT_EMIT_FAILED ErrorCode = "ELEMENT_EMIT_FAILED"
)

// Chain error codes
const (
	CHAIN_INPUT_INVALID ErrorCode = "CHAIN_INPUT_INVALID"
	CHAIN_EMIT_FAILED   ErrorCode = "CHAIN_EMIT_FAILED"
	CHAIN_STEP_FAILED   ErrorCode = "CHAIN_STEP_FAILED"
)

// Rules error codes
const (
	RULES_PARSE_FAILED ErrorCode = "RULES_PARSE_FAILED"
	RULES_EVAL_FAILED  ErrorCode = "RULES_EVAL_FAILED"
)

// Document store error codes
const (
	DOCSTORE_OPEN_FAILED  ErrorCode = "DOCSTORE_OPEN_FAILED"
	DOCSTORE_WRITE_FAILED ErrorCode = "DOCSTORE_WRITE_FAILED"
	DOCSTORE_INDEX_FAILED ErrorCode = "DOCSTORE_INDEX_FAILED"
)

// ElementError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints for
// error handling logic.
type ElementError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *ElementError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
// This enables using errors.Is() and errors.As() with wrapped errors.
func (e *ElementError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is an ElementError with the same Code.
func (e *ElementError) Is(target error) bool {
	var elemErr *ElementError
	if errors.As(target, &elemErr) {
		return e.Code == elemErr.Code
	}
	return false
}

// NewError creates a new non-retryable ElementError with the given code and message.
func NewError(code ErrorCode, message string) *ElementError {
	return &ElementError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable ElementError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *ElementError {
	return &ElementError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable ElementError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *ElementError {
	return &ElementError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// CodeOf returns the ErrorCode carried by err, or empty string if err is not
// an ElementError.
func CodeOf(err error) ErrorCode {
	var elemErr *ElementError
	if errors.As(err, &elemErr) {
		return elemErr.Code
	}
	return ""
}
