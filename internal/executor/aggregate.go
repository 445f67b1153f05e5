package executor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// ActionExecutionResult is the settled outcome of one action, including any
// retries. The recorded attempt count covers the initial try.
type ActionExecutionResult struct {
	ActionID    types.ID       `json:"action_id"`
	Tool        string         `json:"tool,omitempty"`
	Success     bool           `json:"success"`
	Output      map[string]any `json:"output,omitempty"`
	Error       string         `json:"error,omitempty"`
	Attempts    int            `json:"attempts"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Duration    time.Duration  `json:"duration"`
}

// GoalExecutionResult aggregates the settled actions of one goal. A goal
// succeeds exactly when no action remains failed.
type GoalExecutionResult struct {
	GoalID           types.ID                `json:"goal_id"`
	Success          bool                    `json:"success"`
	CompletedActions []ActionExecutionResult `json:"completed_actions"`
	FailedActions    []ActionExecutionResult `json:"failed_actions"`
	StartedAt        time.Time               `json:"started_at"`
	CompletedAt      time.Time               `json:"completed_at"`
	Duration         time.Duration           `json:"duration"`
}

// ExecutionSummary is the numeric digest of a run. It is always computed
// locally from the settled results; Narrative is optional provider prose and
// may be empty.
type ExecutionSummary struct {
	TotalGoals       int           `json:"total_goals"`
	CompletedGoals   int           `json:"completed_goals"`
	FailedGoals      int           `json:"failed_goals"`
	TotalActions     int           `json:"total_actions"`
	CompletedActions int           `json:"completed_actions"`
	FailedActions    int           `json:"failed_actions"`
	SuccessRate      float64       `json:"success_rate"`
	TotalDuration    time.Duration `json:"total_duration"`
	Narrative        string        `json:"narrative,omitempty"`
}

// ExecutionResult is the complete outcome of one ExecutePlan call. Results
// are freshly allocated per call and never shared between runs.
type ExecutionResult struct {
	PlanID         types.ID              `json:"plan_id"`
	Success        bool                  `json:"success"`
	DryRun         bool                  `json:"dry_run"`
	CompletedGoals []types.ID            `json:"completed_goals"`
	FailedGoals    []types.ID            `json:"failed_goals"`
	GoalResults    []GoalExecutionResult `json:"goal_results"`
	Summary        ExecutionSummary      `json:"summary"`
	StartedAt      time.Time             `json:"started_at"`
	CompletedAt    time.Time             `json:"completed_at"`
	Duration       time.Duration         `json:"duration"`
}

// Summarize computes the numeric summary from settled goal results. It makes
// no external calls and always succeeds. SuccessRate is the fraction of
// settled actions that succeeded, zero when no action ran.
func Summarize(result *ExecutionResult) ExecutionSummary {
	summary := ExecutionSummary{
		TotalGoals:     len(result.GoalResults),
		CompletedGoals: len(result.CompletedGoals),
		FailedGoals:    len(result.FailedGoals),
		TotalDuration:  result.Duration,
	}

	for i := range result.GoalResults {
		summary.CompletedActions += len(result.GoalResults[i].CompletedActions)
		summary.FailedActions += len(result.GoalResults[i].FailedActions)
	}
	summary.TotalActions = summary.CompletedActions + summary.FailedActions

	if summary.TotalActions > 0 {
		summary.SuccessRate = float64(summary.CompletedActions) / float64(summary.TotalActions)
	}

	return summary
}

const narrativeSystemPrompt = `You summarize tool execution runs for an operator.
You receive a JSON digest of counts and timings. Reply with at most two
sentences of plain prose describing how the run went. Do not reply with JSON.`

// narrate asks the configured provider to phrase the summary. Any failure,
// including a panicking provider, leaves the result untouched and returns an
// empty string.
func (o *ExecutionOrchestrator) narrate(ctx context.Context, result *ExecutionResult) (narrative string) {
	if o.narrator == nil {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Debug("summary narration panicked", "plan_id", result.PlanID, "panic", r)
			narrative = ""
		}
	}()

	digest, err := json.Marshal(result.Summary)
	if err != nil {
		return ""
	}

	req := llm.NewCompletionRequest(o.narratorModel, []llm.Message{
		llm.NewSystemMessage(narrativeSystemPrompt),
		llm.NewUserMessage(string(digest)),
	})

	resp, err := o.narrator.Complete(ctx, req)
	if err != nil {
		o.logger.Debug("summary narration failed", "plan_id", result.PlanID, "error", err)
		return ""
	}

	return strings.TrimSpace(resp.Message.Content)
}
