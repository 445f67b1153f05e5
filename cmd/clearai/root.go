package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wsyeabsera/clear-ai-sub000/internal/config"
	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/llm/providers"
	"github.com/wsyeabsera/clear-ai-sub000/internal/observability"
	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
)

var (
	configFile string
	verbose    bool

	// Populated by loadConfig before any command runs.
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "clearai",
	Short: "Goal-oriented planning and execution for tool-using agents",
	Long: `clear-ai turns a natural-language query into an executable plan:
goals extracted through a language model, decomposed into subgoals, bound
to registered tools, and laid out on a dependency-ordered timeline. The
run command then executes the plan with bounded concurrency, retries and
per-action timeouts.

Without configuration the CLI uses the offline mock provider and the
builtin demo tools, so plan and run work with no credentials.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default ./"+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig is called before any command runs to load configuration and
// build the logger. A missing config file is fine: defaults plus CLEARAI_*
// environment overrides apply.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	path := configFile
	if path == "" {
		path = config.DefaultConfigFile
	}

	loaded, err := config.NewConfigLoader(config.NewValidator()).LoadWithDefaults(path)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger = observability.NewLogger(cfg.Logging.Format, level, cmd.ErrOrStderr())

	return nil
}

// buildRegistry assembles the tool registry: the builtin demo tools plus any
// manifest given on the command line.
func buildRegistry(manifestPath string) (*tool.InMemoryRegistry, error) {
	registry := tool.NewInMemoryRegistry()
	if err := tool.RegisterBuiltins(registry); err != nil {
		return nil, err
	}

	if manifestPath != "" {
		if err := tool.RegisterManifest(registry, manifestPath); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// buildProvider creates the configured Reasoner backend. The mock provider
// is scripted with one canned plan against the builtin tools so the offline
// demo produces something worth looking at.
func buildProvider() (llm.Provider, error) {
	if cfg.LLM.Type == llm.ProviderMock {
		return demoProvider(), nil
	}

	return providers.NewProvider(cfg.LLM)
}

// demoProvider scripts the responses the planner consumes in order: goal
// extraction, action planning for the single goal, fallback strategies.
func demoProvider() llm.Provider {
	return providers.NewMockProvider([]string{demoGoals, demoActions, demoFallbacks})
}

const demoGoals = `{"goals": [{
  "id": "goal-demo",
  "description": "Demonstrate plan execution with the builtin tools",
  "priority": 8,
  "success_criteria": ["every action completes"],
  "dependencies": [],
  "estimated_duration_ms": 60000,
  "required_resources": ["echo", "calc", "wait"]
}]}`

const demoActions = `{"actions": [
  {"id": "act-echo", "description": "Echo a greeting", "tool": "echo",
   "parameters": {"message": "hello from clear-ai"},
   "estimated_duration_ms": 1000, "dependencies": [],
   "error_strategy": "retry", "max_retries": 2, "timeout_ms": 30000},
  {"id": "act-calc", "description": "Add the demo numbers", "tool": "calc",
   "parameters": {"op": "add", "a": 2, "b": 3},
   "estimated_duration_ms": 1000, "dependencies": ["act-echo"],
   "error_strategy": "retry", "max_retries": 2, "timeout_ms": 30000},
  {"id": "act-wait", "description": "Simulate a slow external call", "tool": "wait",
   "parameters": {"duration_ms": 50},
   "estimated_duration_ms": 1000, "dependencies": [],
   "error_strategy": "retry", "max_retries": 2, "timeout_ms": 30000}
]}`

const demoFallbacks = `{"strategies": [{
  "condition": "a builtin tool fails",
  "action": "retry",
  "description": "Retry the failed action after the registry recovers",
  "success_probability": 0.7
}]}`

// outputJSON renders v as indented JSON.
func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// outputYAML renders v as YAML, going through the JSON field names so both
// structured formats use the same keys.
func outputYAML(cmd *cobra.Command, v any) error {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	var intermediate any
	if err := json.Unmarshal(jsonData, &intermediate); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	data, err := yaml.Marshal(intermediate)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
