package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for core errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_NOT_FOUND         ErrorCode = "CONFIG_NOT_FOUND"
)

// Reasoner / provider error codes
const (
	PROVIDER_NOT_FOUND    ErrorCode = "PROVIDER_NOT_FOUND"
	PROVIDER_INIT_FAILED  ErrorCode = "PROVIDER_INIT_FAILED"
	COMPLETION_FAILED     ErrorCode = "COMPLETION_FAILED"
	RESPONSE_PARSE_FAILED ErrorCode = "RESPONSE_PARSE_FAILED"
)

// Tool error codes
const (
	TOOL_NOT_FOUND          ErrorCode = "TOOL_NOT_FOUND"
	TOOL_EXECUTION_FAILED   ErrorCode = "TOOL_EXECUTION_FAILED"
	TOOL_EXECUTION_TIMEOUT  ErrorCode = "TOOL_EXECUTION_TIMEOUT"
	TOOL_MANIFEST_INVALID   ErrorCode = "TOOL_MANIFEST_INVALID"
	TOOL_ALREADY_REGISTERED ErrorCode = "TOOL_ALREADY_REGISTERED"
)

// Planning error codes
const (
	PLAN_CREATION_FAILED   ErrorCode = "PLAN_CREATION_FAILED"
	PLAN_VALIDATION_FAILED ErrorCode = "PLAN_VALIDATION_FAILED"
)

// Execution error codes
const (
	EXECUTION_FAILED ErrorCode = "EXECUTION_FAILED"
	ACTION_FAILED    ErrorCode = "ACTION_FAILED"
	GOAL_FAILED      ErrorCode = "GOAL_FAILED"
)

// Memory error codes
const (
	MEMORY_LOAD_FAILED ErrorCode = "MEMORY_LOAD_FAILED"
)

// CoreError is the structured error type shared across the core: a namespaced
// code, a human-readable message, a retryability hint, and an optional cause.
type CoreError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error formats as "[CODE] message" or "[CODE] message: cause".
func (e *CoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *CoreError) Unwrap() error {
	return e.Cause
}

// Is matches CoreErrors by code, so callers can compare against a sentinel
// built with NewError(code, ...) regardless of message text.
func (e *CoreError) Is(target error) bool {
	var coreErr *CoreError
	if errors.As(target, &coreErr) {
		return e.Code == coreErr.Code
	}
	return false
}

// NewError creates a non-retryable CoreError.
func NewError(code ErrorCode, message string) *CoreError {
	return &CoreError{
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// NewRetryableError creates a CoreError marked as retryable. Use for
// transient failures such as provider timeouts.
func NewRetryableError(code ErrorCode, message string) *CoreError {
	return &CoreError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a non-retryable CoreError wrapping an existing error.
func WrapError(code ErrorCode, message string, cause error) *CoreError {
	return &CoreError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// IsRetryable reports whether err (or any error in its chain) is a CoreError
// flagged retryable.
func IsRetryable(err error) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Retryable
	}
	return false
}
