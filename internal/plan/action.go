package plan

import (
	"fmt"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// ErrorStrategy selects how an action failure is handled during execution.
type ErrorStrategy string

const (
	ErrorStrategyRetry    ErrorStrategy = "retry"
	ErrorStrategySkip     ErrorStrategy = "skip"
	ErrorStrategyFallback ErrorStrategy = "fallback"
	ErrorStrategyAbort    ErrorStrategy = "abort"
)

// IsValid returns true if the strategy is a known value.
func (s ErrorStrategy) IsValid() bool {
	switch s {
	case ErrorStrategyRetry, ErrorStrategySkip, ErrorStrategyFallback, ErrorStrategyAbort:
		return true
	}
	return false
}

// ErrorHandling is the per-action failure policy proposed at planning time.
type ErrorHandling struct {
	Strategy   ErrorStrategy `json:"strategy"`
	MaxRetries int           `json:"max_retries"`
	Timeout    time.Duration `json:"timeout"`
}

// Action is a single tool invocation with explicit dependencies on other
// actions in the same plan. Tool must name a tool registered at plan
// creation time; proposals naming anything else are dropped before the
// action reaches a plan.
type Action struct {
	ID                   types.ID       `json:"id"`
	Description          string         `json:"description"`
	Tool                 string         `json:"tool"`
	Parameters           map[string]any `json:"parameters,omitempty"`
	EstimatedDuration    time.Duration  `json:"estimated_duration"`
	Dependencies         []types.ID     `json:"dependencies,omitempty"`
	SuccessCriteria      []string       `json:"success_criteria,omitempty"`
	ErrorHandling        ErrorHandling  `json:"error_handling"`
	ResourceRequirements []string       `json:"resource_requirements,omitempty"`
	SubgoalID            types.ID       `json:"subgoal_id,omitempty"`
}

// Validate checks the structural invariants of an action. Dependency
// resolution against the rest of the plan is checked by
// ExecutionPlan.Validate, not here.
func (a *Action) Validate() error {
	if a.ID.IsZero() {
		return fmt.Errorf("action has no id")
	}
	if a.Description == "" {
		return fmt.Errorf("action %s has no description", a.ID)
	}
	if a.EstimatedDuration < MinDuration {
		return fmt.Errorf("action %s duration %s below minimum %s", a.ID, a.EstimatedDuration, MinDuration)
	}
	if a.ErrorHandling.Strategy != "" && !a.ErrorHandling.Strategy.IsValid() {
		return fmt.Errorf("action %s has unknown error strategy %q", a.ID, a.ErrorHandling.Strategy)
	}
	return nil
}

// HasTool reports whether the action is bound to a tool. Unbound actions
// fail immediately at execution time without any external call.
func (a *Action) HasTool() bool {
	return a.Tool != ""
}
