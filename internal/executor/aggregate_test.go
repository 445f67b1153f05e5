package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

func settledAction(success bool) ActionExecutionResult {
	return ActionExecutionResult{
		ActionID: types.NewID(),
		Success:  success,
		Attempts: 1,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		summary := Summarize(&ExecutionResult{})

		assert.Zero(t, summary.TotalGoals)
		assert.Zero(t, summary.TotalActions)
		assert.Zero(t, summary.SuccessRate, "no settled actions means no rate")
		assert.Zero(t, summary.TotalDuration)
	})

	t.Run("mixed outcomes", func(t *testing.T) {
		won := types.NewID()
		lost := types.NewID()
		result := &ExecutionResult{
			CompletedGoals: []types.ID{won},
			FailedGoals:    []types.ID{lost},
			GoalResults: []GoalExecutionResult{
				{
					GoalID:           won,
					Success:          true,
					CompletedActions: []ActionExecutionResult{settledAction(true), settledAction(true), settledAction(true)},
				},
				{
					GoalID:        lost,
					FailedActions: []ActionExecutionResult{settledAction(false)},
				},
			},
			Duration: 42 * time.Second,
		}

		summary := Summarize(result)

		assert.Equal(t, 2, summary.TotalGoals)
		assert.Equal(t, 1, summary.CompletedGoals)
		assert.Equal(t, 1, summary.FailedGoals)
		assert.Equal(t, 4, summary.TotalActions)
		assert.Equal(t, 3, summary.CompletedActions)
		assert.Equal(t, 1, summary.FailedActions)
		assert.InDelta(t, 0.75, summary.SuccessRate, 1e-9)
		assert.Equal(t, 42*time.Second, summary.TotalDuration)
		assert.Empty(t, summary.Narrative, "narration never comes from the numeric summary")
	})

	t.Run("all actions succeed", func(t *testing.T) {
		g := types.NewID()
		result := &ExecutionResult{
			CompletedGoals: []types.ID{g},
			GoalResults: []GoalExecutionResult{
				{GoalID: g, Success: true, CompletedActions: []ActionExecutionResult{settledAction(true)}},
			},
		}

		summary := Summarize(result)
		assert.InDelta(t, 1.0, summary.SuccessRate, 1e-9)
	})
}
