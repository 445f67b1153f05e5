package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/memory"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/planning"
	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

var planCmd = &cobra.Command{
	Use:   "plan \"query\"",
	Short: "Create an execution plan from a query",
	Long: `Create an execution plan from a natural-language query without
executing it.

The planner extracts goals through the configured provider, decomposes
long-running goals into subgoals, proposes actions bound to registered
tools, and annotates the plan with resources, a timeline, risks and a
success probability. Actions referencing unregistered tools are dropped,
never invented.

OUTPUT FORMATS:
  - text (default): human-readable summary
  - yaml: structured YAML for automation
  - json: structured JSON for scripting`,
	Example: `  # Plan offline against the builtin demo tools
  clearai plan "collect the numbers and echo a summary"

  # Structured output for scripting
  clearai plan "audit the nightly export" --output json | jq '.actions'

  # Seed planning context from a memory snapshot
  clearai plan "retry yesterday's import" --memory snapshot.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlanCmd,
}

var (
	planOutput   string
	planIntent   string
	planMemory   string
	planManifest string
)

func init() {
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "text", "Output format: text, yaml, json")
	planCmd.Flags().StringVar(&planIntent, "intent", "task", "Query intent type")
	planCmd.Flags().StringVar(&planMemory, "memory", "", "Memory snapshot YAML file")
	planCmd.Flags().StringVar(&planManifest, "tools", "", "Tool manifest YAML file to register")
}

func runPlanCmd(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry(planManifest)
	if err != nil {
		return err
	}

	provider, err := buildProvider()
	if err != nil {
		return err
	}

	execPlan, err := createPlan(cmd, registry, provider, args[0], planMemory, planIntent)
	if err != nil {
		return err
	}

	return renderPlan(cmd, execPlan, planOutput)
}

// createPlan wires the planning orchestrator and creates a plan for the
// query. Planning events stream to the debug log while planning runs.
func createPlan(cmd *cobra.Command, registry tool.Registry, provider llm.Provider, query, memoryPath, intentType string) (*plan.ExecutionPlan, error) {
	ctx := cmd.Context()

	var snapshot *memory.Snapshot
	if memoryPath != "" {
		var err error
		snapshot, err = memory.LoadSnapshot(memoryPath)
		if err != nil {
			return nil, err
		}
	}

	orch := planning.NewPlanningOrchestrator(provider, registry,
		planning.WithPlanningConfig(cfg.PlanningConfig()),
		planning.WithPlanningLogger(logger),
	)
	defer orch.Close()

	events, cleanup := orch.Events().Subscribe(ctx)
	defer cleanup()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range events {
			logger.Debug("planning event", "type", ev.Type.String(), "payload", ev.Payload)
		}
	}()

	intent := plan.QueryIntent{Type: intentType, Confidence: 1}
	execPlan, err := orch.CreateExecutionPlan(ctx, query, intent, snapshot)

	cleanup()
	<-drained

	if err != nil {
		return nil, err
	}

	return execPlan, nil
}

func renderPlan(cmd *cobra.Command, execPlan *plan.ExecutionPlan, format string) error {
	switch format {
	case "json":
		return outputJSON(cmd, execPlan)
	case "yaml":
		return outputYAML(cmd, execPlan)
	case "text":
		return outputPlanText(cmd, execPlan)
	default:
		return fmt.Errorf("invalid output format: %s (must be text, yaml, or json)", format)
	}
}

// outputPlanText renders the plan in human-readable text format.
func outputPlanText(cmd *cobra.Command, execPlan *plan.ExecutionPlan) error {
	out := cmd.OutOrStdout()
	header := color.New(color.Bold)

	fmt.Fprintf(out, "%s %s\n", header.Sprint("Plan"), execPlan.ID.String())
	fmt.Fprintf(out, "Query:   %s\n", execPlan.OriginalQuery)
	fmt.Fprintf(out, "Intent:  %s (confidence %.2f)\n", execPlan.Intent.Type, execPlan.Intent.Confidence)
	fmt.Fprintf(out, "Created: %s\n\n", execPlan.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))

	fmt.Fprintf(out, "%s\n", header.Sprintf("Goals (%d):", len(execPlan.Goals)))
	for i, g := range execPlan.Goals {
		fmt.Fprintf(out, "  %d. [P%d] %s\n", i+1, g.Priority, g.Description)
		for _, c := range g.SuccessCriteria {
			fmt.Fprintf(out, "     criteria: %s\n", c)
		}
	}
	fmt.Fprintln(out)

	if decomposed := subgoalsFromDecomposition(execPlan); len(decomposed) > 0 {
		fmt.Fprintf(out, "%s\n", header.Sprintf("Subgoals (%d):", len(decomposed)))
		for i, g := range decomposed {
			fmt.Fprintf(out, "  %d. %s (from goal %s)\n", i+1, g.Description, shortID(g.ParentGoal))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%s\n", header.Sprintf("Actions (%d):", len(execPlan.Actions)))
	for i, a := range execPlan.Actions {
		fmt.Fprintf(out, "  %d. %s\n", i+1, a.Description)
		fmt.Fprintf(out, "     tool: %s  est: %s", a.Tool, a.EstimatedDuration)
		if len(a.Dependencies) > 0 {
			fmt.Fprintf(out, "  after: %s", shortIDs(a.Dependencies))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)

	if len(execPlan.Timeline.Phases) > 0 {
		fmt.Fprintf(out, "%s\n", header.Sprintf("Timeline (%s total):", execPlan.Timeline.TotalDuration))
		for _, phase := range execPlan.Timeline.Phases {
			fmt.Fprintf(out, "  %s: %d action(s), %s\n", phase.Name, len(phase.Actions), phase.Duration)
		}
		fmt.Fprintln(out)
	}

	alloc := execPlan.ResourceAllocation
	fmt.Fprintf(out, "%s\n", header.Sprint("Resources:"))
	fmt.Fprintf(out, "  tools:  %v\n", alloc.RequiredTools)
	fmt.Fprintf(out, "  time:   %s  memory: %d MB  cost: %.2f\n\n",
		alloc.TimeAllocation.Total, alloc.MemoryRequirements>>20, alloc.EstimatedCost)

	risk := execPlan.RiskAssessment
	fmt.Fprintf(out, "%s %s\n", header.Sprint("Risk:"), riskColor(risk.OverallRisk).Sprint(string(risk.OverallRisk)))
	for _, r := range risk.Risks {
		fmt.Fprintf(out, "  - [%s] %s: %s\n", riskColor(r.Impact).Sprint(string(r.Impact)), r.Type, r.Description)
	}
	if len(risk.Risks) > 0 {
		fmt.Fprintln(out)
	}

	if len(execPlan.FallbackStrategies) > 0 {
		fmt.Fprintf(out, "%s\n", header.Sprintf("Fallbacks (%d):", len(execPlan.FallbackStrategies)))
		for _, f := range execPlan.FallbackStrategies {
			fmt.Fprintf(out, "  - when %s: %s\n", f.Condition, f.Action)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Estimated duration:  %s\n", execPlan.EstimatedDuration)
	fmt.Fprintf(out, "Success probability: %.0f%%\n", execPlan.SuccessProbability*100)

	return nil
}

// subgoalsFromDecomposition returns only the subgoals produced by splitting
// a long-running goal. Goals carried over unchanged are not repeated.
func subgoalsFromDecomposition(execPlan *plan.ExecutionPlan) []plan.Goal {
	var decomposed []plan.Goal
	for _, g := range execPlan.Subgoals {
		if !g.ParentGoal.IsZero() {
			decomposed = append(decomposed, g)
		}
	}
	return decomposed
}

// riskColor maps a risk level onto a terminal color.
func riskColor(level plan.RiskLevel) *color.Color {
	switch level {
	case plan.RiskLevelCritical:
		return color.New(color.FgRed, color.Bold)
	case plan.RiskLevelHigh:
		return color.New(color.FgRed)
	case plan.RiskLevelMedium:
		return color.New(color.FgYellow)
	case plan.RiskLevelLow:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Reset)
	}
}

// shortID abbreviates an identifier for text output.
func shortID(id types.ID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func shortIDs(ids []types.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = shortID(id)
	}
	return strings.Join(parts, ", ")
}
