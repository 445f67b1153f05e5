// Package planning turns a user query and working-memory context into an
// executable plan. It extracts goals through the configured language-model
// provider, decomposes long-running goals into subgoals, proposes
// tool-bound actions constrained to the live tool registry, and derives
// resource, timeline, risk and success annotations. Every provider-backed
// step degrades independently so a failed step never aborts plan creation.
package planning

import (
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
)

// Per-action heuristics used by resource allocation.
const (
	// MemoryPerAction is the fixed memory estimate charged per planned action.
	MemoryPerAction int64 = 100 << 20 // 100 MB

	// CostPerAction is the fixed cost estimate charged per planned action.
	CostPerAction = 0.01
)

// Decomposition fan-out requested from the provider for long-running goals.
const (
	MinSubgoalFanout = 3
	MaxSubgoalFanout = 5
)

// Config bounds what the planner may produce. Zero values are replaced
// with defaults by Normalize.
type Config struct {
	// MaxGoals caps how many top-level goals one query may produce.
	MaxGoals int `json:"max_goals"`

	// MaxSubgoals caps decomposition output across all goals.
	MaxSubgoals int `json:"max_subgoals"`

	// MaxActions caps the total number of actions in a plan.
	MaxActions int `json:"max_actions"`

	// MaxDuration is the decomposition threshold: a goal estimated to run
	// longer than this is split into subgoals.
	MaxDuration time.Duration `json:"max_duration"`

	// EnableFallbackStrategies gates the provider-backed fallback step.
	EnableFallbackStrategies bool `json:"enable_fallback_strategies"`

	// EnableRiskAssessment gates risk assessment. When disabled the plan
	// carries an empty assessment at overall level low.
	EnableRiskAssessment bool `json:"enable_risk_assessment"`

	// Model overrides the provider's default model for planning calls.
	Model string `json:"model,omitempty"`

	// Temperature is the sampling temperature for planning calls.
	Temperature float64 `json:"temperature"`
}

// DefaultConfig returns the planner defaults.
func DefaultConfig() Config {
	return Config{
		MaxGoals:                 5,
		MaxSubgoals:              10,
		MaxActions:               20,
		MaxDuration:              5 * time.Minute,
		EnableFallbackStrategies: true,
		EnableRiskAssessment:     true,
		Temperature:              0.7,
	}
}

// Normalize fills zero values with defaults and clamps nonsense.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.MaxGoals <= 0 {
		c.MaxGoals = def.MaxGoals
	}
	if c.MaxSubgoals <= 0 {
		c.MaxSubgoals = def.MaxSubgoals
	}
	if c.MaxActions <= 0 {
		c.MaxActions = def.MaxActions
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = def.MaxDuration
	}
	if c.MaxDuration < plan.MinDuration {
		c.MaxDuration = plan.MinDuration
	}
	if c.Temperature < 0 {
		c.Temperature = def.Temperature
	}
	return c
}
