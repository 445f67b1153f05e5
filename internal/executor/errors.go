package executor

import (
	"errors"
	"fmt"
)

// ErrorType represents specific execution error types.
type ErrorType string

const (
	// ErrorTypeActionExecution indicates a tool invocation failed.
	ErrorTypeActionExecution ErrorType = "action_execution_failed"

	// ErrorTypeGoalExecution indicates a goal finished with failed actions.
	ErrorTypeGoalExecution ErrorType = "goal_execution_failed"

	// ErrorTypePlanExecution indicates the run as a whole failed.
	ErrorTypePlanExecution ErrorType = "plan_execution_failed"

	// ErrorTypeInvalidParameter indicates an invalid argument was provided.
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"

	// ErrorTypeInternal indicates an unexpected orchestration-level error.
	ErrorTypeInternal ErrorType = "internal_error"
)

// ExecutionError represents an execution-specific error with type and
// context. It implements the error interface and supports error wrapping
// with errors.Is/As.
type ExecutionError struct {
	// Type identifies the specific error type.
	Type ErrorType

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error that caused this error (optional).
	Cause error

	// Context provides additional contextual information about the error.
	Context map[string]any
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain traversal.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Is implements the errors.Is interface. Two ExecutionErrors match if they
// have the same error type.
func (e *ExecutionError) Is(target error) bool {
	var execErr *ExecutionError
	if errors.As(target, &execErr) {
		return e.Type == execErr.Type
	}
	return false
}

// WithContext adds contextual information to the error.
func (e *ExecutionError) WithContext(key string, value any) *ExecutionError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewExecutionError creates a new ExecutionError with the given type and
// message.
func NewExecutionError(errType ErrorType, message string) *ExecutionError {
	return &ExecutionError{
		Type:    errType,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapExecutionError wraps an existing error with execution error context.
func WrapExecutionError(errType ErrorType, message string, cause error) *ExecutionError {
	return &ExecutionError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}
