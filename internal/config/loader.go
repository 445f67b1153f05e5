package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variable overrides, so
// CLEARAI_PLANNER_MAX_GOALS overrides planner.max_goals.
const envPrefix = "CLEARAI"

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path. Returns an error
// if the file doesn't exist or cannot be parsed.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.finish(v)
}

// LoadWithDefaults loads configuration from the specified file path. If the
// file doesn't exist, defaults and CLEARAI_* environment overrides still
// apply.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return l.Load(path)
		}
	}

	return l.finish(newViper())
}

// newViper builds a Viper instance carrying every default and the
// environment override binding. Registering defaults for all keys is what
// lets AutomaticEnv reach keys absent from the file.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// finish unmarshals, interpolates and validates the assembled settings.
func (l *viperConfigLoader) finish(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyInterpolation(&cfg)

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("llm.type", string(def.LLM.Type))
	v.SetDefault("llm.api_key", def.LLM.APIKey)
	v.SetDefault("llm.base_url", def.LLM.BaseURL)
	v.SetDefault("llm.default_model", def.LLM.DefaultModel)
	v.SetDefault("llm.requests_per_minute", def.LLM.RequestsPerMinute)

	v.SetDefault("planner.max_goals", def.Planner.MaxGoals)
	v.SetDefault("planner.max_subgoals", def.Planner.MaxSubgoals)
	v.SetDefault("planner.max_actions", def.Planner.MaxActions)
	v.SetDefault("planner.max_duration", def.Planner.MaxDuration)
	v.SetDefault("planner.enable_fallback_strategies", def.Planner.EnableFallbackStrategies)
	v.SetDefault("planner.enable_risk_assessment", def.Planner.EnableRiskAssessment)
	v.SetDefault("planner.model", def.Planner.Model)
	v.SetDefault("planner.temperature", def.Planner.Temperature)

	v.SetDefault("executor.max_concurrent_actions", def.Executor.MaxConcurrentActions)
	v.SetDefault("executor.timeout_per_action", def.Executor.TimeoutPerAction)
	v.SetDefault("executor.stop_on_first_failure", def.Executor.StopOnFirstFailure)
	v.SetDefault("executor.retry_failed_actions", def.Executor.RetryFailedActions)
	v.SetDefault("executor.max_retries", def.Executor.MaxRetries)
	v.SetDefault("executor.dry_run", def.Executor.DryRun)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}

// applyInterpolation expands ${VAR} references in every user-facing string
// field. Validation runs on the expanded values.
func applyInterpolation(cfg *Config) {
	cfg.LLM.APIKey = interpolateString(cfg.LLM.APIKey)
	cfg.LLM.BaseURL = interpolateString(cfg.LLM.BaseURL)
	cfg.LLM.DefaultModel = interpolateString(cfg.LLM.DefaultModel)
	cfg.Planner.Model = interpolateString(cfg.Planner.Model)
	cfg.Logging.Level = interpolateString(cfg.Logging.Level)
	cfg.Logging.Format = interpolateString(cfg.Logging.Format)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateString replaces ${VAR_NAME} with environment variable values.
// References to unset variables are left as-is.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")

		if envValue := os.Getenv(varName); envValue != "" {
			return envValue
		}

		return match
	})
}
