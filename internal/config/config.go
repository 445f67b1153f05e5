// Package config loads and validates the clear-ai configuration file. The
// file is YAML with llm, planner, executor and logging sections; every key
// has a default, CLEARAI_* environment variables override file values, and
// string values may reference environment variables with ${VAR} syntax.
package config

import (
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/executor"
	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/planning"
)

// DefaultConfigFile is the config file name looked up in the working
// directory when no --config flag is given.
const DefaultConfigFile = "clearai.yaml"

// Config is the root configuration for clear-ai.
type Config struct {
	LLM      llm.ProviderConfig `mapstructure:"llm" yaml:"llm"`
	Planner  PlannerConfig      `mapstructure:"planner" yaml:"planner"`
	Executor ExecutorConfig     `mapstructure:"executor" yaml:"executor"`
	Logging  LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// PlannerConfig bounds plan creation.
type PlannerConfig struct {
	MaxGoals                 int           `mapstructure:"max_goals" yaml:"max_goals" validate:"min=1,max=50"`
	MaxSubgoals              int           `mapstructure:"max_subgoals" yaml:"max_subgoals" validate:"min=1,max=100"`
	MaxActions               int           `mapstructure:"max_actions" yaml:"max_actions" validate:"min=1,max=200"`
	MaxDuration              time.Duration `mapstructure:"max_duration" yaml:"max_duration" validate:"min=1s"`
	EnableFallbackStrategies bool          `mapstructure:"enable_fallback_strategies" yaml:"enable_fallback_strategies"`
	EnableRiskAssessment     bool          `mapstructure:"enable_risk_assessment" yaml:"enable_risk_assessment"`
	Model                    string        `mapstructure:"model" yaml:"model,omitempty"`
	Temperature              float64       `mapstructure:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
}

// ExecutorConfig bounds plan execution.
type ExecutorConfig struct {
	MaxConcurrentActions int           `mapstructure:"max_concurrent_actions" yaml:"max_concurrent_actions" validate:"min=1,max=100"`
	TimeoutPerAction     time.Duration `mapstructure:"timeout_per_action" yaml:"timeout_per_action" validate:"min=1s"`
	StopOnFirstFailure   bool          `mapstructure:"stop_on_first_failure" yaml:"stop_on_first_failure"`
	RetryFailedActions   bool          `mapstructure:"retry_failed_actions" yaml:"retry_failed_actions"`
	MaxRetries           int           `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0,lte=10"`
	DryRun               bool          `mapstructure:"dry_run" yaml:"dry_run"`
}

// LoggingConfig configures the CLI log handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// DefaultConfig returns a Config mirroring the library defaults, with the
// offline mock provider selected so the CLI works without credentials.
func DefaultConfig() *Config {
	p := planning.DefaultConfig()
	x := executor.DefaultExecutionOptions()

	return &Config{
		LLM: llm.ProviderConfig{
			Type: llm.ProviderMock,
		},
		Planner: PlannerConfig{
			MaxGoals:                 p.MaxGoals,
			MaxSubgoals:              p.MaxSubgoals,
			MaxActions:               p.MaxActions,
			MaxDuration:              p.MaxDuration,
			EnableFallbackStrategies: p.EnableFallbackStrategies,
			EnableRiskAssessment:     p.EnableRiskAssessment,
			Model:                    p.Model,
			Temperature:              p.Temperature,
		},
		Executor: ExecutorConfig{
			MaxConcurrentActions: x.MaxConcurrentActions,
			TimeoutPerAction:     x.TimeoutPerAction,
			StopOnFirstFailure:   x.StopOnFirstFailure,
			RetryFailedActions:   x.RetryFailedActions,
			MaxRetries:           x.MaxRetries,
			DryRun:               x.DryRun,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// PlanningConfig maps the planner section onto the planning package config.
func (c *Config) PlanningConfig() planning.Config {
	return planning.Config{
		MaxGoals:                 c.Planner.MaxGoals,
		MaxSubgoals:              c.Planner.MaxSubgoals,
		MaxActions:               c.Planner.MaxActions,
		MaxDuration:              c.Planner.MaxDuration,
		EnableFallbackStrategies: c.Planner.EnableFallbackStrategies,
		EnableRiskAssessment:     c.Planner.EnableRiskAssessment,
		Model:                    c.Planner.Model,
		Temperature:              c.Planner.Temperature,
	}
}

// ExecutionOptions maps the executor section onto the executor package
// options.
func (c *Config) ExecutionOptions() executor.Options {
	return executor.Options{
		MaxConcurrentActions: c.Executor.MaxConcurrentActions,
		TimeoutPerAction:     c.Executor.TimeoutPerAction,
		StopOnFirstFailure:   c.Executor.StopOnFirstFailure,
		RetryFailedActions:   c.Executor.RetryFailedActions,
		MaxRetries:           c.Executor.MaxRetries,
		DryRun:               c.Executor.DryRun,
	}
}
