package planning

import (
	"errors"
	"fmt"
)

// ErrorType represents specific planning error types.
type ErrorType string

const (
	// ErrorTypeExtraction indicates the goal extraction step failed.
	ErrorTypeExtraction ErrorType = "goal_extraction_failed"

	// ErrorTypeDecomposition indicates the goal decomposition step failed.
	ErrorTypeDecomposition ErrorType = "goal_decomposition_failed"

	// ErrorTypeActionPlanning indicates the action planning step failed.
	ErrorTypeActionPlanning ErrorType = "action_planning_failed"

	// ErrorTypeFallback indicates the fallback strategy step failed.
	ErrorTypeFallback ErrorType = "fallback_planning_failed"

	// ErrorTypeParse indicates provider output could not be parsed into
	// proposals.
	ErrorTypeParse ErrorType = "proposal_parse_failed"

	// ErrorTypeValidation indicates a completed plan failed validation.
	ErrorTypeValidation ErrorType = "validation_failed"

	// ErrorTypeInvalidParameter indicates an invalid parameter was provided.
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"

	// ErrorTypeInternal indicates an unexpected orchestration-level error.
	ErrorTypeInternal ErrorType = "internal_error"
)

// PlanningError represents a planning-specific error with type and context.
// It implements the error interface and supports error wrapping with
// errors.Is/As.
type PlanningError struct {
	// Type identifies the specific error type.
	Type ErrorType

	// Step names the planning step the error belongs to, when known.
	Step string

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error that caused this error (optional).
	Cause error

	// Context provides additional contextual information about the error.
	Context map[string]any
}

// Error implements the error interface.
func (e *PlanningError) Error() string {
	prefix := string(e.Type)
	if e.Step != "" {
		prefix = fmt.Sprintf("%s/%s", e.Type, e.Step)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", prefix, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain traversal.
func (e *PlanningError) Unwrap() error {
	return e.Cause
}

// Is implements the errors.Is interface. Two PlanningErrors match if they
// have the same error type.
func (e *PlanningError) Is(target error) bool {
	var planningErr *PlanningError
	if errors.As(target, &planningErr) {
		return e.Type == planningErr.Type
	}
	return false
}

// WithContext adds contextual information to the error.
func (e *PlanningError) WithContext(key string, value any) *PlanningError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithStep records which planning step produced the error.
func (e *PlanningError) WithStep(step string) *PlanningError {
	e.Step = step
	return e
}

// NewPlanningError creates a new PlanningError with the given type and message.
func NewPlanningError(errType ErrorType, message string) *PlanningError {
	return &PlanningError{
		Type:    errType,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapPlanningError wraps an existing error with planning error context.
func WrapPlanningError(errType ErrorType, message string, cause error) *PlanningError {
	return &PlanningError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewParseError creates an error for unparseable provider output.
func NewParseError(step string, cause error) *PlanningError {
	return WrapPlanningError(ErrorTypeParse, "provider output could not be parsed", cause).WithStep(step)
}
