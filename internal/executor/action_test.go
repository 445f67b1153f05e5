package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// blankFailureService reports failure without a message.
type blankFailureService struct{}

func (blankFailureService) ExecuteTool(ctx context.Context, name string, args map[string]any, timeout time.Duration) (*tool.ExecutionOutcome, error) {
	return &tool.ExecutionOutcome{Success: false}, nil
}

func TestActionExecutor_Execute(t *testing.T) {
	t.Run("successful invocation", func(t *testing.T) {
		svc := newScriptedService()
		executor := NewActionExecutor(svc, nil, nil)

		action := execAction(types.NewID(), "fetch")
		result := executor.Execute(context.Background(), &action, 5*time.Second)

		assert.True(t, result.Success)
		assert.Equal(t, action.ID, result.ActionID)
		assert.Equal(t, "fetch", result.Tool)
		assert.Equal(t, map[string]any{"tool": "fetch"}, result.Output)
		assert.Empty(t, result.Error)
		assert.Equal(t, 1, result.Attempts)
		assert.False(t, result.CompletedAt.Before(result.StartedAt))
	})

	t.Run("no tool bound fails without external call", func(t *testing.T) {
		svc := newScriptedService()
		executor := NewActionExecutor(svc, nil, nil)

		action := execAction(types.NewID(), "")
		result := executor.Execute(context.Background(), &action, 5*time.Second)

		assert.False(t, result.Success)
		assert.Equal(t, "No tool assigned to action", result.Error)
		assert.Zero(t, result.Duration)
		assert.Zero(t, svc.totalCalls())
	})

	t.Run("outcome failure carries the tool error", func(t *testing.T) {
		svc := newScriptedService()
		svc.failures["fetch"] = 1
		executor := NewActionExecutor(svc, nil, nil)

		action := execAction(types.NewID(), "fetch")
		result := executor.Execute(context.Background(), &action, 5*time.Second)

		assert.False(t, result.Success)
		assert.Equal(t, "scripted failure", result.Error)
		assert.Nil(t, result.Output)
	})

	t.Run("outcome failure without message gets a default", func(t *testing.T) {
		executor := NewActionExecutor(blankFailureService{}, nil, nil)

		action := execAction(types.NewID(), "fetch")
		result := executor.Execute(context.Background(), &action, 5*time.Second)

		assert.False(t, result.Success)
		assert.Equal(t, "tool execution failed", result.Error)
	})

	t.Run("invocation error becomes a failure result", func(t *testing.T) {
		svc := newScriptedService()
		svc.errors["missing"] = errors.New("tool \"missing\" is not registered")
		executor := NewActionExecutor(svc, nil, nil)

		action := execAction(types.NewID(), "missing")
		result := executor.Execute(context.Background(), &action, 5*time.Second)

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "not registered")
	})

	t.Run("panicking tool settles as failure", func(t *testing.T) {
		svc := newScriptedService()
		svc.panics["volatile"] = true
		executor := NewActionExecutor(svc, nil, nil)

		action := execAction(types.NewID(), "volatile")

		var result ActionExecutionResult
		require.NotPanics(t, func() {
			result = executor.Execute(context.Background(), &action, 5*time.Second)
		})

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "tool panicked")
		assert.Contains(t, result.Error, "scripted tool panic")
		assert.False(t, result.CompletedAt.Before(result.StartedAt))
	})

	t.Run("timeout bounds the invocation", func(t *testing.T) {
		registry := tool.NewInMemoryRegistry()
		require.NoError(t, tool.RegisterBuiltins(registry))
		executor := NewActionExecutor(registry, nil, nil)

		action := execAction(types.NewID(), "wait")
		action.Parameters = map[string]any{"duration_ms": 5000}

		start := time.Now()
		result := executor.Execute(context.Background(), &action, 50*time.Millisecond)
		elapsed := time.Since(start)

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "timed out")
		assert.Less(t, elapsed, 2*time.Second, "the timeout cuts the call short")
	})
}
