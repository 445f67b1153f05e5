package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsyeabsera/clear-ai-sub000/internal/executor"
	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/planning"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clearai.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// The offline provider is the default so the CLI needs no credentials.
	assert.Equal(t, llm.ProviderMock, cfg.LLM.Type)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Zero(t, cfg.LLM.RequestsPerMinute)

	// Planner and executor defaults mirror the library defaults.
	assert.Equal(t, planning.DefaultConfig(), cfg.PlanningConfig())
	assert.Equal(t, executor.DefaultExecutionOptions(), cfg.ExecutionOptions())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadValidConfig(t *testing.T) {
	configPath := writeConfigFile(t, `
llm:
  type: anthropic
  default_model: claude-sonnet-4-5
  requests_per_minute: 30

planner:
  max_goals: 3
  max_subgoals: 6
  max_actions: 12
  max_duration: 10m
  enable_fallback_strategies: true
  enable_risk_assessment: false
  model: claude-haiku-4-5
  temperature: 0.2

executor:
  max_concurrent_actions: 5
  timeout_per_action: 45s
  stop_on_first_failure: true
  retry_failed_actions: true
  max_retries: 4
  dry_run: true

logging:
  level: debug
  format: json
`)

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Type)
	assert.Equal(t, "claude-sonnet-4-5", cfg.LLM.DefaultModel)
	assert.Equal(t, 30, cfg.LLM.RequestsPerMinute)

	assert.Equal(t, 3, cfg.Planner.MaxGoals)
	assert.Equal(t, 6, cfg.Planner.MaxSubgoals)
	assert.Equal(t, 12, cfg.Planner.MaxActions)
	assert.Equal(t, 10*time.Minute, cfg.Planner.MaxDuration)
	assert.True(t, cfg.Planner.EnableFallbackStrategies)
	assert.False(t, cfg.Planner.EnableRiskAssessment, "explicit false must survive the true default")
	assert.Equal(t, "claude-haiku-4-5", cfg.Planner.Model)
	assert.InDelta(t, 0.2, cfg.Planner.Temperature, 1e-9)

	assert.Equal(t, 5, cfg.Executor.MaxConcurrentActions)
	assert.Equal(t, 45*time.Second, cfg.Executor.TimeoutPerAction)
	assert.True(t, cfg.Executor.StopOnFirstFailure)
	assert.True(t, cfg.Executor.RetryFailedActions)
	assert.Equal(t, 4, cfg.Executor.MaxRetries)
	assert.True(t, cfg.Executor.DryRun)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFillsOmittedKeysWithDefaults(t *testing.T) {
	configPath := writeConfigFile(t, `
llm:
  type: ollama

planner:
  max_goals: 2
`)

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Type)
	assert.Equal(t, 2, cfg.Planner.MaxGoals)

	def := DefaultConfig()
	assert.Equal(t, def.Planner.MaxSubgoals, cfg.Planner.MaxSubgoals)
	assert.Equal(t, def.Planner.MaxDuration, cfg.Planner.MaxDuration)
	assert.True(t, cfg.Planner.EnableFallbackStrategies)
	assert.True(t, cfg.Planner.EnableRiskAssessment)
	assert.Equal(t, def.Executor.MaxConcurrentActions, cfg.Executor.MaxConcurrentActions)
	assert.Equal(t, def.Executor.TimeoutPerAction, cfg.Executor.TimeoutPerAction)
	assert.True(t, cfg.Executor.RetryFailedActions)
	assert.Equal(t, def.Executor.MaxRetries, cfg.Executor.MaxRetries)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariableInterpolation(t *testing.T) {
	os.Setenv("PLANNER_TEST_KEY", "sk-test-123")
	os.Setenv("PLANNER_TEST_MODEL", "llama3")
	defer func() {
		os.Unsetenv("PLANNER_TEST_KEY")
		os.Unsetenv("PLANNER_TEST_MODEL")
	}()

	configPath := writeConfigFile(t, `
llm:
  type: openai
  api_key: ${PLANNER_TEST_KEY}

planner:
  model: ${PLANNER_TEST_MODEL}
`)

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.LLM.APIKey)
	assert.Equal(t, "llama3", cfg.Planner.Model)
}

func TestLoadWithMissingEnvironmentVariables(t *testing.T) {
	configPath := writeConfigFile(t, `
llm:
  type: mock
  api_key: ${NONEXISTENT_CLEAR_AI_VAR}
`)

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)

	// Missing environment variables are left as-is.
	assert.Equal(t, "${NONEXISTENT_CLEAR_AI_VAR}", cfg.LLM.APIKey)
}

func TestEnvOverridesFileValues(t *testing.T) {
	os.Setenv("CLEARAI_PLANNER_MAX_GOALS", "9")
	os.Setenv("CLEARAI_EXECUTOR_TIMEOUT_PER_ACTION", "5s")
	os.Setenv("CLEARAI_LOGGING_LEVEL", "warn")
	defer func() {
		os.Unsetenv("CLEARAI_PLANNER_MAX_GOALS")
		os.Unsetenv("CLEARAI_EXECUTOR_TIMEOUT_PER_ACTION")
		os.Unsetenv("CLEARAI_LOGGING_LEVEL")
	}()

	configPath := writeConfigFile(t, `
planner:
  max_goals: 4

logging:
  level: debug
`)

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Planner.MaxGoals)
	assert.Equal(t, 5*time.Second, cfg.Executor.TimeoutPerAction)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadWithDefaults_FileNotFound(t *testing.T) {
	loader := NewConfigLoader(NewValidator())

	cfg, err := loader.LoadWithDefaults("/nonexistent/clearai.yaml")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadWithDefaults_EnvWithoutFile(t *testing.T) {
	os.Setenv("CLEARAI_PLANNER_MAX_GOALS", "7")
	defer os.Unsetenv("CLEARAI_PLANNER_MAX_GOALS")

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.LoadWithDefaults("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Planner.MaxGoals)
	assert.Equal(t, DefaultConfig().Planner.MaxSubgoals, cfg.Planner.MaxSubgoals)
}

func TestLoadWithDefaults_FileExists(t *testing.T) {
	configPath := writeConfigFile(t, `
executor:
  max_concurrent_actions: 8
`)

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.LoadWithDefaults(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Executor.MaxConcurrentActions)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	configPath := writeConfigFile(t, "{{ this is not yaml")

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	configPath := writeConfigFile(t, `
planner:
  max_goals: 0
`)

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "planner.max_goals")
	assert.Contains(t, err.Error(), "must be at least 1")
}

func TestValidation_NilConfig(t *testing.T) {
	err := NewValidator().Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration is nil")
}

func TestValidation_UnknownProviderType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Type = "telepathy"

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.type")
	assert.Contains(t, err.Error(), "must be one of")
}

func TestValidation_TimeoutTooShort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Executor.TimeoutPerAction = 100 * time.Millisecond

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executor.timeout_per_action")
	assert.Contains(t, err.Error(), "must be at least 1s")
}

func TestValidation_TemperatureOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Planner.Temperature = 2.5

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planner.temperature")
	assert.Contains(t, err.Error(), "must be at most 2")
}

func TestValidation_BadLoggingFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = "xml"

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
	assert.Contains(t, err.Error(), "must be one of")
}

func TestValidation_RetriesRequireACount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Executor.RetryFailedActions = true
	cfg.Executor.MaxRetries = 0

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executor.max_retries")
	assert.Contains(t, err.Error(), "retry_failed_actions")

	// With retries off a zero count is fine.
	cfg.Executor.RetryFailedActions = false
	assert.NoError(t, NewValidator().Validate(cfg))
}

func TestConfigConversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Planner.MaxGoals = 7
	cfg.Planner.Model = "claude-haiku-4-5"
	cfg.Executor.StopOnFirstFailure = true
	cfg.Executor.MaxRetries = 5

	pc := cfg.PlanningConfig()
	assert.Equal(t, 7, pc.MaxGoals)
	assert.Equal(t, "claude-haiku-4-5", pc.Model)
	assert.Equal(t, cfg.Planner.MaxDuration, pc.MaxDuration)

	opts := cfg.ExecutionOptions()
	assert.True(t, opts.StopOnFirstFailure)
	assert.Equal(t, 5, opts.MaxRetries)
	assert.Equal(t, cfg.Executor.TimeoutPerAction, opts.TimeoutPerAction)
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"MaxGoals":         "max_goals",
		"TimeoutPerAction": "timeout_per_action",
		"LLM":              "llm",
		"APIKey":           "api_key",
		"DryRun":           "dry_run",
		"Temperature":      "temperature",
	}

	for in, want := range cases {
		assert.Equal(t, want, camelToSnake(in), "camelToSnake(%q)", in)
	}
}
