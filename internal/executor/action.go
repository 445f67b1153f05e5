package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
)

// noToolAssignedMessage is the exact failure message for actions that reach
// execution without a bound tool. Callers match on it.
const noToolAssignedMessage = "No tool assigned to action"

// ActionExecutor settles single actions against the tool execution service.
type ActionExecutor struct {
	tools  tool.ExecutionService
	logger *slog.Logger
	tracer trace.Tracer
}

// NewActionExecutor creates an ActionExecutor. A nil logger defaults to
// slog.Default(); a nil tracer disables spans.
func NewActionExecutor(tools tool.ExecutionService, logger *slog.Logger, tracer trace.Tracer) *ActionExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionExecutor{
		tools:  tools,
		logger: logger,
		tracer: tracer,
	}
}

// Execute runs one action bounded by timeout and settles it into a result.
// An action without a bound tool fails immediately without any external
// call. All other failures, panicking tool implementations included, become
// failure results rather than errors: this boundary never throws.
func (e *ActionExecutor) Execute(ctx context.Context, action *plan.Action, timeout time.Duration) (result ActionExecutionResult) {
	start := time.Now().UTC()
	result = ActionExecutionResult{
		ActionID:    action.ID,
		Tool:        action.Tool,
		Attempts:    1,
		StartedAt:   start,
		CompletedAt: start,
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Output = nil
			result.Error = fmt.Sprintf("tool panicked: %v", r)
			result.CompletedAt = time.Now().UTC()
			result.Duration = result.CompletedAt.Sub(start)
			e.logger.Error("tool execution panicked", "action_id", action.ID, "tool", action.Tool, "panic", r)
		}
	}()

	if !action.HasTool() {
		result.Error = noToolAssignedMessage
		e.logger.Warn("action has no tool bound", "action_id", action.ID)
		return result
	}

	var span trace.Span
	if e.tracer != nil {
		ctx, span = e.tracer.Start(ctx, "executor.execute_action",
			trace.WithAttributes(
				attribute.String("action.id", action.ID.String()),
				attribute.String("action.tool", action.Tool),
			),
		)
		defer span.End()
	}

	outcome, err := e.tools.ExecuteTool(ctx, action.Tool, action.Parameters, timeout)
	result.CompletedAt = time.Now().UTC()
	result.Duration = result.CompletedAt.Sub(start)

	if err != nil {
		result.Error = err.Error()
		if span != nil {
			span.SetStatus(codes.Error, "tool invocation failed")
			span.RecordError(err)
		}
		e.logger.Warn("tool invocation failed", "action_id", action.ID, "tool", action.Tool, "error", err)
		return result
	}

	if !outcome.Success {
		result.Error = outcome.Error
		if result.Error == "" {
			result.Error = "tool execution failed"
		}
		if span != nil {
			span.SetStatus(codes.Error, "tool reported failure")
		}
		return result
	}

	result.Success = true
	result.Output = outcome.Result
	if span != nil {
		span.SetStatus(codes.Ok, "action completed")
		span.SetAttributes(attribute.Int64("action.duration_ms", result.Duration.Milliseconds()))
	}
	return result
}
