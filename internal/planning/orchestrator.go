package planning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/memory"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// PlanningOrchestrator runs the planning pipeline that turns a query into
// an ExecutionPlan. Provider-backed steps are individually degradable: a
// step that fails or returns unusable output is replaced by an empty
// result and logged, never aborting the plan as a whole.
//
// Thread safety: a PlanningOrchestrator is safe for concurrent use; all
// per-plan state lives in locals and every call allocates a fresh plan.
type PlanningOrchestrator struct {
	provider llm.Provider
	registry tool.Registry
	config   Config
	logger   *slog.Logger
	tracer   trace.Tracer
	events   PlanningEventEmitter

	extractor  *GoalExtractor
	decomposer *GoalDecomposer
	actions    *ActionPlanner
	fallbacks  *FallbackPlanner
}

// PlanningOrchestratorOption is a functional option for configuring
// PlanningOrchestrator.
type PlanningOrchestratorOption func(*PlanningOrchestrator)

// WithPlanningConfig sets the planning configuration.
// If not provided, DefaultConfig is used.
func WithPlanningConfig(cfg Config) PlanningOrchestratorOption {
	return func(o *PlanningOrchestrator) {
		o.config = cfg
	}
}

// WithPlanningLogger sets the logger.
// If not provided, slog.Default is used.
func WithPlanningLogger(logger *slog.Logger) PlanningOrchestratorOption {
	return func(o *PlanningOrchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPlanningTracer sets the tracer for span creation.
// If not provided, no spans are created.
func WithPlanningTracer(tracer trace.Tracer) PlanningOrchestratorOption {
	return func(o *PlanningOrchestrator) {
		o.tracer = tracer
	}
}

// WithPlanningEventEmitter sets the event emitter.
// If not provided, a DefaultPlanningEventEmitter is created.
func WithPlanningEventEmitter(e PlanningEventEmitter) PlanningOrchestratorOption {
	return func(o *PlanningOrchestrator) {
		if e != nil {
			o.events = e
		}
	}
}

// NewPlanningOrchestrator creates a PlanningOrchestrator backed by the
// given provider and tool registry.
func NewPlanningOrchestrator(provider llm.Provider, registry tool.Registry, opts ...PlanningOrchestratorOption) *PlanningOrchestrator {
	o := &PlanningOrchestrator{
		provider: provider,
		registry: registry,
		config:   DefaultConfig(),
		logger:   slog.Default(),
		events:   NewDefaultPlanningEventEmitter(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.config = o.config.Normalize()

	o.extractor = NewGoalExtractor(provider, o.config, o.logger)
	o.decomposer = NewGoalDecomposer(provider, o.config, o.logger)
	o.actions = NewActionPlanner(provider, registry, o.config, o.logger)
	o.fallbacks = NewFallbackPlanner(provider, o.config, o.logger)

	return o
}

// Events returns the orchestrator's event emitter for subscription.
func (o *PlanningOrchestrator) Events() PlanningEventEmitter {
	return o.events
}

// Close releases the orchestrator's event emitter.
func (o *PlanningOrchestrator) Close() error {
	return o.events.Close()
}

// CreateExecutionPlan turns a query into a complete ExecutionPlan.
//
// The pipeline runs in a fixed order:
//  1. Extract goals from the query and the truncated memory context.
//  2. Decompose goals above the MaxDuration threshold into subgoals.
//  3. Plan actions per subgoal, constrained to registered tools.
//  4. Allocate resources from the planned actions.
//  5. Build the phase timeline.
//  6. Assess risks when EnableRiskAssessment is set.
//  7. Propose fallback strategies when EnableFallbackStrategies is set.
//  8. Estimate the success probability.
//  9. Validate the assembled plan's structural invariants.
//
// A provider-backed step that fails degrades to an empty or pass-through
// result with a warning; the call still returns a structurally complete
// plan. Only two things surface as an error: a plan that fails the final
// validation, wrapped as ErrorTypeValidation, and an unexpected panic
// inside the pipeline, wrapped as ErrorTypeInternal.
func (o *PlanningOrchestrator) CreateExecutionPlan(ctx context.Context, query string, intent plan.QueryIntent, snapshot *memory.Snapshot) (execPlan *plan.ExecutionPlan, err error) {
	defer func() {
		if r := recover(); r != nil {
			execPlan = nil
			err = NewPlanningError(ErrorTypeInternal, fmt.Sprintf("planning panicked: %v", r))
		}
	}()

	planID := types.NewID()
	start := time.Now()

	var span trace.Span
	if o.tracer != nil {
		ctx, span = o.tracer.Start(ctx, "planning.create_execution_plan",
			trace.WithAttributes(
				attribute.String("plan.id", planID.String()),
				attribute.String("intent.type", intent.Type),
			))
		defer span.End()
	}

	o.logger.Info("creating execution plan",
		"plan_id", planID,
		"intent_type", intent.Type,
	)
	o.emit(ctx, NewPlanningEvent(EventPlanStarted, planID, map[string]any{
		"intent_type": intent.Type,
	}))

	goals, stepErr := o.extractor.Extract(ctx, query, snapshot)
	if stepErr != nil {
		o.degrade(ctx, planID, "goal_extraction", stepErr)
		goals = nil
	}
	o.emit(ctx, NewPlanningEvent(EventGoalsExtracted, planID, map[string]any{
		"goals": len(goals),
	}))

	subgoals, stepErr := o.decomposer.Decompose(ctx, goals)
	if stepErr != nil {
		// Undecomposed goals still group and execute; an empty subgoal
		// list would not.
		o.degrade(ctx, planID, "goal_decomposition", stepErr)
		subgoals = goals
	}
	o.emit(ctx, NewPlanningEvent(EventGoalDecomposed, planID, map[string]any{
		"subgoals": len(subgoals),
	}))

	actions, dropped, stepErr := o.actions.PlanActions(ctx, subgoals)
	if stepErr != nil {
		o.degrade(ctx, planID, "action_planning", stepErr)
		actions, dropped = nil, nil
	}
	for _, d := range dropped {
		o.emit(ctx, NewActionDroppedEvent(planID, d.Tool, d.Description))
	}
	o.emit(ctx, NewPlanningEvent(EventActionsPlanned, planID, map[string]any{
		"actions": len(actions),
		"dropped": len(dropped),
	}))

	allocation := AllocateResources(actions)
	timeline := BuildTimeline(actions)

	var assessment plan.RiskAssessment
	if o.config.EnableRiskAssessment {
		assessment = AssessRisks(actions)
		o.emit(ctx, NewPlanningEvent(EventRiskAssessed, planID, map[string]any{
			"risks":        len(assessment.Risks),
			"overall_risk": string(assessment.OverallRisk),
		}))
	}

	var strategies []plan.FallbackStrategy
	if o.config.EnableFallbackStrategies {
		strategies, stepErr = o.fallbacks.ProposeStrategies(ctx, goals, actions)
		if stepErr != nil {
			o.degrade(ctx, planID, "fallback_strategies", stepErr)
			strategies = nil
		}
	}

	probability := EstimateSuccessProbability(actions, assessment, snapshot)

	built := &plan.ExecutionPlan{
		ID:                 planID,
		OriginalQuery:      query,
		Intent:             intent,
		Goals:              goals,
		Subgoals:           subgoals,
		Actions:            actions,
		ResourceAllocation: allocation,
		Timeline:           timeline,
		FallbackStrategies: strategies,
		EstimatedDuration:  timeline.TotalDuration,
		SuccessProbability: probability,
		RiskAssessment:     assessment,
		CreatedAt:          time.Now().UTC(),
	}

	if violations := ValidatePlan(built, o.registry); len(violations) > 0 {
		o.logger.Error("assembled plan failed validation",
			"plan_id", planID,
			"violations", violations,
		)
		if span != nil {
			span.SetStatus(codes.Error, "plan validation failed")
		}
		return nil, NewPlanningError(ErrorTypeValidation, "assembled plan failed validation").
			WithStep("plan_validation").
			WithContext("violations", violations)
	}
	o.emit(ctx, NewPlanningEvent(EventPlanValidated, planID, map[string]any{
		"actions": len(actions),
	}))

	o.emit(ctx, NewPlanCreatedEvent(planID, len(goals), len(subgoals), len(actions), probability))

	if span != nil {
		span.SetAttributes(
			attribute.Int("plan.goals", len(goals)),
			attribute.Int("plan.subgoals", len(subgoals)),
			attribute.Int("plan.actions", len(actions)),
			attribute.Float64("plan.success_probability", probability),
		)
		span.SetStatus(codes.Ok, "")
	}

	o.logger.Info("execution plan created",
		"plan_id", planID,
		"goals", len(goals),
		"subgoals", len(subgoals),
		"actions", len(actions),
		"dropped_actions", len(dropped),
		"success_probability", probability,
		"duration", time.Since(start),
	)

	return built, nil
}

// degrade records a failed pipeline step: a warning log plus a degradation
// event. The pipeline continues with an empty result for the step.
func (o *PlanningOrchestrator) degrade(ctx context.Context, planID types.ID, step string, err error) {
	o.logger.Warn("planning step degraded",
		"plan_id", planID,
		"step", step,
		"error", err,
	)
	o.emit(ctx, NewStepDegradedEvent(planID, step, err.Error()))
}

func (o *PlanningOrchestrator) emit(ctx context.Context, event PlanningEvent) {
	if emitErr := o.events.Emit(ctx, event); emitErr != nil {
		o.logger.Debug("planning event dropped",
			"event_type", event.Type,
			"error", emitErr,
		)
	}
}
