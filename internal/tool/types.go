package tool

import (
	"context"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// Tool is a single invocable capability. Implementations must be safe for
// concurrent Execute calls and should honor context cancellation.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Parameters returns the JSON-schema-shaped parameter description
	Parameters() map[string]any

	// Execute runs the tool with the given arguments
	Execute(ctx context.Context, args map[string]any) (map[string]any, error)

	// Health reports whether the tool is currently usable
	Health(ctx context.Context) types.HealthStatus
}

// Descriptor is the catalog view of a tool, as consumed by the planner when
// constraining action proposals to registered tools.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// NewDescriptor builds a Descriptor from a Tool.
func NewDescriptor(t Tool) Descriptor {
	return Descriptor{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Parameters(),
	}
}

// ExecutionOutcome is the settled result of one tool invocation. Failures are
// carried in the outcome rather than as a Go error so callers always receive
// a structurally complete record.
type ExecutionOutcome struct {
	Success       bool           `json:"success"`
	Result        map[string]any `json:"result,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime time.Duration  `json:"execution_time"`
}

// Metrics tracks execution statistics for a registered tool.
type Metrics struct {
	ExecutionCount int64         `json:"execution_count"`
	SuccessCount   int64         `json:"success_count"`
	FailureCount   int64         `json:"failure_count"`
	TotalDuration  time.Duration `json:"total_duration"`
	LastExecutedAt time.Time     `json:"last_executed_at"`
}

// NewMetrics creates a zeroed Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordSuccess records a successful execution.
func (m *Metrics) RecordSuccess(duration time.Duration) {
	m.ExecutionCount++
	m.SuccessCount++
	m.TotalDuration += duration
	m.LastExecutedAt = time.Now()
}

// RecordFailure records a failed execution.
func (m *Metrics) RecordFailure(duration time.Duration) {
	m.ExecutionCount++
	m.FailureCount++
	m.TotalDuration += duration
	m.LastExecutedAt = time.Now()
}

// SuccessRate returns the fraction of executions that succeeded.
func (m *Metrics) SuccessRate() float64 {
	if m.ExecutionCount == 0 {
		return 0
	}
	return float64(m.SuccessCount) / float64(m.ExecutionCount)
}
