package executor

import "time"

// Defaults applied by Options.Normalize.
const (
	DefaultMaxConcurrentActions = 3
	DefaultTimeoutPerAction     = 30 * time.Second
	DefaultMaxRetries           = 2
)

// defaultRetryDelay is the fixed pause between a failed attempt and its
// retry. Override with WithRetryDelay.
const defaultRetryDelay = time.Second

// Options controls a single ExecutePlan call.
//
// The zero value disables retries; start from DefaultExecutionOptions when
// the standard retry policy is wanted. Normalize fills the numeric fields
// only and never touches the boolean switches.
type Options struct {
	// MaxConcurrentActions bounds how many actions of one batch run at
	// the same time.
	MaxConcurrentActions int `json:"max_concurrent_actions"`

	// TimeoutPerAction bounds each individual tool invocation.
	TimeoutPerAction time.Duration `json:"timeout_per_action"`

	// StopOnFirstFailure halts the run at the first failed action: the
	// goal's remaining batches and all later goals are abandoned. Actions
	// already in flight still settle.
	StopOnFirstFailure bool `json:"stop_on_first_failure"`

	// RetryFailedActions re-attempts failed actions after a fixed delay.
	RetryFailedActions bool `json:"retry_failed_actions"`

	// MaxRetries is the number of re-attempts per failed action when
	// RetryFailedActions is set.
	MaxRetries int `json:"max_retries"`

	// DryRun reports every goal and action as successful without invoking
	// any tool.
	DryRun bool `json:"dry_run"`
}

// DefaultExecutionOptions returns the standard execution policy.
func DefaultExecutionOptions() Options {
	return Options{
		MaxConcurrentActions: DefaultMaxConcurrentActions,
		TimeoutPerAction:     DefaultTimeoutPerAction,
		StopOnFirstFailure:   false,
		RetryFailedActions:   true,
		MaxRetries:           DefaultMaxRetries,
		DryRun:               false,
	}
}

// Normalize fills unset numeric fields with their defaults.
func (o *Options) Normalize() {
	if o.MaxConcurrentActions <= 0 {
		o.MaxConcurrentActions = DefaultMaxConcurrentActions
	}
	if o.TimeoutPerAction <= 0 {
		o.TimeoutPerAction = DefaultTimeoutPerAction
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
}
