package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wsyeabsera/clear-ai-sub000/internal/executor"
	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
)

var runCmd = &cobra.Command{
	Use:   "run \"query\"",
	Short: "Create a plan and execute it",
	Long: `Create an execution plan from a query, then execute it against the
tool registry.

Execution groups actions by goal, runs goals sequentially by priority,
and runs each goal's actions in dependency order with bounded
concurrency. Failed actions are retried per configuration; one action's
failure never cancels actions already in flight.

With --dry-run the plan is validated and every goal reported successful
without invoking a single tool.`,
	Example: `  # Plan and execute offline with the builtin demo tools
  clearai run "collect the numbers and echo a summary"

  # Validate without invoking tools
  clearai run "audit the nightly export" --dry-run

  # Structured result for scripting
  clearai run "..." --output json | jq '.summary'`,
	Args: cobra.ExactArgs(1),
	RunE: runRunCmd,
}

var (
	runOutput   string
	runIntent   string
	runMemory   string
	runManifest string
	runDryRun   bool
)

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "text", "Output format: text, yaml, json")
	runCmd.Flags().StringVar(&runIntent, "intent", "task", "Query intent type")
	runCmd.Flags().StringVar(&runMemory, "memory", "", "Memory snapshot YAML file")
	runCmd.Flags().StringVar(&runManifest, "tools", "", "Tool manifest YAML file to register")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Report success without invoking tools")
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry(runManifest)
	if err != nil {
		return err
	}

	provider, err := buildProvider()
	if err != nil {
		return err
	}

	execPlan, err := createPlan(cmd, registry, provider, args[0], runMemory, runIntent)
	if err != nil {
		return err
	}

	execOpts := []executor.ExecutorOption{executor.WithExecutorLogger(logger)}
	// The scripted mock has nothing useful to say about a finished run.
	if cfg.LLM.Type != llm.ProviderMock {
		execOpts = append(execOpts, executor.WithNarrator(provider, cfg.Planner.Model))
	}
	exec := executor.NewExecutionOrchestrator(registry, execOpts...)

	opts := cfg.ExecutionOptions()
	if runDryRun {
		opts.DryRun = true
	}

	result, err := exec.ExecutePlan(cmd.Context(), execPlan, opts)
	if err != nil {
		return err
	}

	if err := renderResult(cmd, result, runOutput); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("execution finished with %d failed action(s)", result.Summary.FailedActions)
	}

	return nil
}

func renderResult(cmd *cobra.Command, result *executor.ExecutionResult, format string) error {
	switch format {
	case "json":
		return outputJSON(cmd, result)
	case "yaml":
		return outputYAML(cmd, result)
	case "text":
		return outputResultText(cmd, result)
	default:
		return fmt.Errorf("invalid output format: %s (must be text, yaml, or json)", format)
	}
}

// outputResultText renders the execution result in human-readable text
// format.
func outputResultText(cmd *cobra.Command, result *executor.ExecutionResult) error {
	out := cmd.OutOrStdout()
	header := color.New(color.Bold)

	status := color.New(color.FgGreen).Sprint("succeeded")
	if !result.Success {
		status = color.New(color.FgRed).Sprint("failed")
	}
	mode := ""
	if result.DryRun {
		mode = " (dry run)"
	}

	fmt.Fprintf(out, "%s %s %s%s\n", header.Sprint("Run"), shortID(result.PlanID), status, mode)
	fmt.Fprintf(out, "Goals:    %d/%d completed\n", result.Summary.CompletedGoals, result.Summary.TotalGoals)
	fmt.Fprintf(out, "Actions:  %d/%d completed (%.0f%% success)\n",
		result.Summary.CompletedActions, result.Summary.TotalActions, result.Summary.SuccessRate*100)
	fmt.Fprintf(out, "Duration: %s\n\n", result.Duration)

	for _, goal := range result.GoalResults {
		goalStatus := color.New(color.FgGreen).Sprint("ok")
		if !goal.Success {
			goalStatus = color.New(color.FgRed).Sprint("FAILED")
		}
		fmt.Fprintf(out, "%s %s [%s] %s\n",
			header.Sprint("Goal"), shortID(goal.GoalID), goalStatus, goal.Duration)

		for _, action := range goal.CompletedActions {
			fmt.Fprintf(out, "  %s %s (%s, attempt %d)\n",
				color.New(color.FgGreen).Sprint("ok"), action.Tool, action.Duration, action.Attempts)
		}
		for _, action := range goal.FailedActions {
			fmt.Fprintf(out, "  %s %s: %s (attempts %d)\n",
				color.New(color.FgRed).Sprint("FAILED"), action.Tool, action.Error, action.Attempts)
		}
	}
	if len(result.GoalResults) > 0 {
		fmt.Fprintln(out)
	}

	if result.Summary.Narrative != "" {
		fmt.Fprintf(out, "%s %s\n", header.Sprint("Summary:"), result.Summary.Narrative)
	}

	return nil
}
