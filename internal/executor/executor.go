package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// ExecutionOrchestrator drives execution plans goal by goal. Goals run
// strictly sequentially in descending priority order; actions within one
// batch run concurrently and settle independently. The plan itself is
// treated as read-only, so concurrent runs of different plans share no
// mutable state.
type ExecutionOrchestrator struct {
	actions       *ActionExecutor
	narrator      llm.Provider
	narratorModel string
	logger        *slog.Logger
	tracer        trace.Tracer
	retryDelay    time.Duration
}

// ExecutorOption is a functional option for configuring ExecutionOrchestrator.
type ExecutorOption func(*ExecutionOrchestrator)

// WithExecutorLogger configures the logger for the orchestrator.
func WithExecutorLogger(l *slog.Logger) ExecutorOption {
	return func(o *ExecutionOrchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithExecutorTracer configures an optional tracer. Without one, no spans
// are recorded.
func WithExecutorTracer(t trace.Tracer) ExecutorOption {
	return func(o *ExecutionOrchestrator) {
		o.tracer = t
	}
}

// WithNarrator configures an optional provider used to phrase the execution
// summary. Narration failures never affect the execution result.
func WithNarrator(p llm.Provider, model string) ExecutorOption {
	return func(o *ExecutionOrchestrator) {
		o.narrator = p
		o.narratorModel = model
	}
}

// WithRetryDelay overrides the fixed pause between retry attempts.
func WithRetryDelay(d time.Duration) ExecutorOption {
	return func(o *ExecutionOrchestrator) {
		if d > 0 {
			o.retryDelay = d
		}
	}
}

// NewExecutionOrchestrator creates an orchestrator that settles actions
// against the given tool execution service.
func NewExecutionOrchestrator(tools tool.ExecutionService, opts ...ExecutorOption) *ExecutionOrchestrator {
	o := &ExecutionOrchestrator{
		logger:     slog.Default(),
		retryDelay: defaultRetryDelay,
	}

	for _, opt := range opts {
		opt(o)
	}

	base := o.logger
	o.logger = base.With("component", "execution_orchestrator")
	o.actions = NewActionExecutor(tools, base, o.tracer)

	return o
}

// ExecutePlan runs a plan and returns a freshly allocated result.
//
// The execution process:
//  1. Normalizes options; dry runs return an all-success result immediately
//  2. Groups actions under their owning goal
//  3. Visits goals sequentially in descending priority order, skipping
//     goals with no grouped actions
//  4. Orders each goal's actions by dependency and partitions them into
//     concurrency-bounded batches
//  5. Runs batches strictly in sequence, actions within a batch
//     concurrently, retrying failures per the retry policy
//  6. Computes the numeric summary, optionally narrated by a provider
//
// Callers always receive a structurally complete result. An unexpected
// panic returns a fully failed result plus a wrapped error, never a partial
// result. The plan is never mutated.
func (o *ExecutionOrchestrator) ExecutePlan(ctx context.Context, execPlan *plan.ExecutionPlan, opts Options) (result *ExecutionResult, err error) {
	if execPlan == nil {
		return nil, NewExecutionError(ErrorTypeInvalidParameter, "execution plan is required")
	}

	opts.Normalize()
	start := time.Now().UTC()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("plan execution panicked", "plan_id", execPlan.ID, "panic", r)
			result = fullyFailedResult(execPlan, start)
			err = NewExecutionError(ErrorTypeInternal, fmt.Sprintf("plan execution panicked: %v", r))
		}
	}()

	var span trace.Span
	if o.tracer != nil {
		ctx, span = o.tracer.Start(ctx, "executor.execute_plan",
			trace.WithAttributes(
				attribute.String("plan.id", execPlan.ID.String()),
				attribute.Int("plan.goals", len(execPlan.Goals)),
				attribute.Int("plan.actions", len(execPlan.Actions)),
				attribute.Bool("plan.dry_run", opts.DryRun),
			),
		)
		defer span.End()
	}

	o.logger.Info("starting plan execution",
		"plan_id", execPlan.ID,
		"goals", len(execPlan.Goals),
		"actions", len(execPlan.Actions),
		"dry_run", opts.DryRun,
		"max_concurrent", opts.MaxConcurrentActions,
	)

	if opts.DryRun {
		result = o.dryRunResult(execPlan, start)
		if span != nil {
			span.SetStatus(codes.Ok, "dry run completed")
		}
		o.logger.Info("dry run completed", "plan_id", execPlan.ID, "goals", len(result.CompletedGoals))
		return result, nil
	}

	groups := groupActionsByGoal(execPlan)
	o.warnOrphanedGroups(execPlan, groups)

	ordered := goalsByPriority(execPlan.Goals)

	result = &ExecutionResult{
		PlanID:         execPlan.ID,
		CompletedGoals: make([]types.ID, 0, len(ordered)),
		FailedGoals:    make([]types.ID, 0),
		GoalResults:    make([]GoalExecutionResult, 0, len(ordered)),
		StartedAt:      start,
	}

	for i := range ordered {
		g := &ordered[i]
		grouped := groups[g.ID]
		if len(grouped) == 0 {
			o.logger.Warn("goal has no actions, skipping", "plan_id", execPlan.ID, "goal_id", g.ID)
			continue
		}

		goalResult := o.executeGoal(ctx, g, grouped, opts)
		result.GoalResults = append(result.GoalResults, goalResult)

		if goalResult.Success {
			result.CompletedGoals = append(result.CompletedGoals, g.ID)
			continue
		}

		result.FailedGoals = append(result.FailedGoals, g.ID)
		if opts.StopOnFirstFailure {
			o.logger.Warn("halting after failed goal",
				"plan_id", execPlan.ID,
				"goal_id", g.ID,
				"remaining_goals", len(ordered)-i-1,
			)
			break
		}
	}

	result.Success = len(result.FailedGoals) == 0
	result.CompletedAt = time.Now().UTC()
	result.Duration = result.CompletedAt.Sub(start)
	result.Summary = Summarize(result)
	if narrative := o.narrate(ctx, result); narrative != "" {
		result.Summary.Narrative = narrative
	}

	if span != nil {
		span.SetStatus(codes.Ok, "plan execution completed")
		span.SetAttributes(
			attribute.Bool("result.success", result.Success),
			attribute.Int("result.completed_goals", len(result.CompletedGoals)),
			attribute.Int("result.failed_goals", len(result.FailedGoals)),
			attribute.Int64("result.duration_ms", result.Duration.Milliseconds()),
		)
	}

	o.logger.Info("plan execution completed",
		"plan_id", execPlan.ID,
		"success", result.Success,
		"completed_goals", len(result.CompletedGoals),
		"failed_goals", len(result.FailedGoals),
		"duration", result.Duration,
	)

	return result, nil
}

// executeGoal settles one goal's actions in dependency order. Batches run
// strictly in sequence; a later batch never starts before every action of
// the previous batch has settled.
func (o *ExecutionOrchestrator) executeGoal(ctx context.Context, g *plan.Goal, actions []plan.Action, opts Options) GoalExecutionResult {
	start := time.Now().UTC()

	var span trace.Span
	if o.tracer != nil {
		ctx, span = o.tracer.Start(ctx, "executor.execute_goal",
			trace.WithAttributes(
				attribute.String("goal.id", g.ID.String()),
				attribute.Int("goal.priority", g.Priority),
				attribute.Int("goal.actions", len(actions)),
			),
		)
		defer span.End()
	}

	o.logger.Info("executing goal",
		"goal_id", g.ID,
		"priority", g.Priority,
		"actions", len(actions),
	)

	goalResult := GoalExecutionResult{
		GoalID:           g.ID,
		CompletedActions: make([]ActionExecutionResult, 0, len(actions)),
		FailedActions:    make([]ActionExecutionResult, 0),
		StartedAt:        start,
	}

	ordered := plan.TopologicalOrder(actions)
	batches := plan.PartitionBatches(ordered, opts.MaxConcurrentActions)

	for batchIdx, batch := range batches {
		failedInBatch := 0
		for _, settled := range o.executeBatch(ctx, batch, opts) {
			if settled.Success {
				goalResult.CompletedActions = append(goalResult.CompletedActions, settled)
			} else {
				goalResult.FailedActions = append(goalResult.FailedActions, settled)
				failedInBatch++
			}
		}

		if failedInBatch > 0 && opts.StopOnFirstFailure && batchIdx < len(batches)-1 {
			o.logger.Warn("abandoning remaining batches after failure",
				"goal_id", g.ID,
				"batch", batchIdx+1,
				"remaining_batches", len(batches)-batchIdx-1,
			)
			break
		}
	}

	goalResult.Success = len(goalResult.FailedActions) == 0
	goalResult.CompletedAt = time.Now().UTC()
	goalResult.Duration = goalResult.CompletedAt.Sub(start)

	if span != nil {
		if goalResult.Success {
			span.SetStatus(codes.Ok, "goal completed")
		} else {
			span.SetStatus(codes.Error, "goal had failed actions")
		}
		span.SetAttributes(
			attribute.Int("goal.completed_actions", len(goalResult.CompletedActions)),
			attribute.Int("goal.failed_actions", len(goalResult.FailedActions)),
		)
	}

	o.logger.Info("goal execution finished",
		"goal_id", g.ID,
		"success", goalResult.Success,
		"completed", len(goalResult.CompletedActions),
		"failed", len(goalResult.FailedActions),
		"duration", goalResult.Duration,
	)

	return goalResult
}

// executeBatch dispatches every action in the batch concurrently and waits
// for all of them to settle. One action's failure never cancels or blocks
// its batch siblings.
func (o *ExecutionOrchestrator) executeBatch(ctx context.Context, batch []plan.Action, opts Options) []ActionExecutionResult {
	var wg sync.WaitGroup
	resultsChan := make(chan ActionExecutionResult, len(batch))

	for i := range batch {
		wg.Add(1)
		go func(action *plan.Action) {
			defer wg.Done()
			resultsChan <- o.executeWithRetry(ctx, action, opts)
		}(&batch[i])
	}

	wg.Wait()
	close(resultsChan)

	settled := make([]ActionExecutionResult, 0, len(batch))
	for r := range resultsChan {
		settled = append(settled, r)
	}
	return settled
}

// executeWithRetry settles one action, re-attempting failures per the
// options. A successful retry replaces the failed outcome entirely, so the
// final result carries the retry's output and attempt count. The retry
// delay honors context cancellation; a cancelled wait keeps the last
// failure.
func (o *ExecutionOrchestrator) executeWithRetry(ctx context.Context, action *plan.Action, opts Options) ActionExecutionResult {
	result := o.actions.Execute(ctx, action, opts.TimeoutPerAction)
	if result.Success || !opts.RetryFailedActions {
		return result
	}

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		o.logger.Warn("action failed, retrying",
			"action_id", action.ID,
			"attempt", attempt,
			"max_retries", opts.MaxRetries,
			"error", result.Error,
		)

		select {
		case <-time.After(o.retryDelay):
		case <-ctx.Done():
			return result
		}

		retry := o.actions.Execute(ctx, action, opts.TimeoutPerAction)
		retry.Attempts = attempt + 1
		result = retry
		if result.Success {
			break
		}
	}

	return result
}

// dryRunResult fabricates an all-success result covering every goal in the
// plan without invoking any tool.
func (o *ExecutionOrchestrator) dryRunResult(execPlan *plan.ExecutionPlan, start time.Time) *ExecutionResult {
	groups := groupActionsByGoal(execPlan)

	result := &ExecutionResult{
		PlanID:         execPlan.ID,
		Success:        true,
		DryRun:         true,
		CompletedGoals: make([]types.ID, 0, len(execPlan.Goals)),
		FailedGoals:    make([]types.ID, 0),
		GoalResults:    make([]GoalExecutionResult, 0, len(execPlan.Goals)),
		StartedAt:      start,
	}

	for i := range execPlan.Goals {
		g := &execPlan.Goals[i]
		goalResult := GoalExecutionResult{
			GoalID:           g.ID,
			Success:          true,
			CompletedActions: make([]ActionExecutionResult, 0, len(groups[g.ID])),
			FailedActions:    make([]ActionExecutionResult, 0),
			StartedAt:        start,
			CompletedAt:      start,
		}
		for _, a := range groups[g.ID] {
			goalResult.CompletedActions = append(goalResult.CompletedActions, ActionExecutionResult{
				ActionID:    a.ID,
				Tool:        a.Tool,
				Success:     true,
				StartedAt:   start,
				CompletedAt: start,
			})
		}
		result.CompletedGoals = append(result.CompletedGoals, g.ID)
		result.GoalResults = append(result.GoalResults, goalResult)
	}

	result.CompletedAt = time.Now().UTC()
	result.Duration = result.CompletedAt.Sub(start)
	result.Summary = Summarize(result)
	return result
}

// fullyFailedResult marks every goal in the plan failed. It backs the panic
// recovery path so callers never see a partial result.
func fullyFailedResult(execPlan *plan.ExecutionPlan, start time.Time) *ExecutionResult {
	result := &ExecutionResult{
		PlanID:         execPlan.ID,
		CompletedGoals: make([]types.ID, 0),
		FailedGoals:    make([]types.ID, 0, len(execPlan.Goals)),
		GoalResults:    make([]GoalExecutionResult, 0),
		StartedAt:      start,
	}
	for i := range execPlan.Goals {
		result.FailedGoals = append(result.FailedGoals, execPlan.Goals[i].ID)
	}
	result.CompletedAt = time.Now().UTC()
	result.Duration = result.CompletedAt.Sub(start)
	result.Summary = Summarize(result)
	return result
}

// groupActionsByGoal buckets the plan's actions under their owning goal id.
// Action values are copied so execution never touches the plan.
func groupActionsByGoal(execPlan *plan.ExecutionPlan) map[types.ID][]plan.Action {
	groups := make(map[types.ID][]plan.Action)
	for i := range execPlan.Actions {
		owner := execPlan.OwningGoal(&execPlan.Actions[i])
		groups[owner] = append(groups[owner], execPlan.Actions[i])
	}
	return groups
}

// warnOrphanedGroups logs actions whose owning goal cannot be resolved.
// Such groups never match a goal and never execute.
func (o *ExecutionOrchestrator) warnOrphanedGroups(execPlan *plan.ExecutionPlan, groups map[types.ID][]plan.Action) {
	known := make(map[types.ID]bool, len(execPlan.Goals))
	for i := range execPlan.Goals {
		known[execPlan.Goals[i].ID] = true
	}
	for key, grouped := range groups {
		if !known[key] {
			o.logger.Warn("actions grouped under unresolvable goal, never executed",
				"plan_id", execPlan.ID,
				"group_key", key,
				"actions", len(grouped),
			)
		}
	}
}

// goalsByPriority returns the plan's goals sorted by descending priority
// without touching the input slice. Equal priorities keep their original
// order.
func goalsByPriority(goals []plan.Goal) []plan.Goal {
	ordered := make([]plan.Goal, len(goals))
	copy(ordered, goals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	return ordered
}
