package planning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm/providers"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// assembledPlan builds a plan shaped like orchestrator output: one
// undecomposed goal doubling as its own subgoal, two chained actions bound
// to builtin tools.
func assembledPlan() *plan.ExecutionPlan {
	g := plan.Goal{
		ID:                types.NewID(),
		Description:       "collect and report",
		Priority:          6,
		EstimatedDuration: time.Minute,
	}
	a1 := plan.Action{
		ID:                types.NewID(),
		Description:       "collect the numbers",
		Tool:              "calc",
		EstimatedDuration: 2 * time.Second,
		SubgoalID:         g.ID,
	}
	a2 := plan.Action{
		ID:                types.NewID(),
		Description:       "report the total",
		Tool:              "echo",
		EstimatedDuration: 2 * time.Second,
		Dependencies:      []types.ID{a1.ID},
		SubgoalID:         g.ID,
	}

	return &plan.ExecutionPlan{
		ID:                 types.NewID(),
		OriginalQuery:      "collect and report",
		Goals:              []plan.Goal{g},
		Subgoals:           []plan.Goal{g},
		Actions:            []plan.Action{a1, a2},
		SuccessProbability: 0.8,
		CreatedAt:          time.Now().UTC(),
	}
}

func TestValidatePlan_ValidPlan(t *testing.T) {
	registry := newPlannerRegistry(t)

	assert.Empty(t, ValidatePlan(assembledPlan(), registry))
}

func TestValidatePlan_DegradedEmptyPlanIsValid(t *testing.T) {
	registry := newPlannerRegistry(t)

	// A fully degraded pipeline still assembles a plan: id set, every
	// list empty. That plan must pass the gate.
	empty := &plan.ExecutionPlan{
		ID:                 types.NewID(),
		OriginalQuery:      "nothing worked",
		SuccessProbability: 0.95,
		CreatedAt:          time.Now().UTC(),
	}

	assert.Empty(t, ValidatePlan(empty, registry))
}

func TestValidatePlan_NilPlan(t *testing.T) {
	violations := ValidatePlan(nil, newPlannerRegistry(t))

	require.Len(t, violations, 1)
	assert.Equal(t, "plan is nil", violations[0])
}

func TestValidatePlan_MissingPlanID(t *testing.T) {
	execPlan := assembledPlan()
	execPlan.ID = ""

	violations := ValidatePlan(execPlan, newPlannerRegistry(t))

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "plan has no id")
}

func TestValidatePlan_DuplicateActionIDs(t *testing.T) {
	execPlan := assembledPlan()
	execPlan.Actions[1].ID = execPlan.Actions[0].ID
	execPlan.Actions[1].Dependencies = nil

	violations := ValidatePlan(execPlan, newPlannerRegistry(t))

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "duplicate action id")
}

func TestValidatePlan_DanglingDependency(t *testing.T) {
	execPlan := assembledPlan()
	ghost := types.NewID()
	execPlan.Actions[1].Dependencies = []types.ID{ghost}

	violations := ValidatePlan(execPlan, newPlannerRegistry(t))

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "depends on unknown action")
	assert.Contains(t, violations[0], ghost.String())
}

func TestValidatePlan_UnregisteredTool(t *testing.T) {
	t.Run("bound to an unknown tool", func(t *testing.T) {
		execPlan := assembledPlan()
		execPlan.Actions[0].Tool = "nmap"

		violations := ValidatePlan(execPlan, newPlannerRegistry(t))

		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], `unregistered tool "nmap"`)
	})

	t.Run("unbound actions are not flagged", func(t *testing.T) {
		// An unbound action fails at execution time by contract; the gate
		// only rejects bindings the registry cannot honor.
		execPlan := assembledPlan()
		execPlan.Actions[0].Tool = ""

		assert.Empty(t, ValidatePlan(execPlan, newPlannerRegistry(t)))
	})

	t.Run("nil registry skips the tool check", func(t *testing.T) {
		execPlan := assembledPlan()
		execPlan.Actions[0].Tool = "nmap"

		assert.Empty(t, ValidatePlan(execPlan, nil))
	})
}

func TestValidatePlan_ProbabilityBounds(t *testing.T) {
	registry := newPlannerRegistry(t)

	for _, p := range []float64{0, 0.1, 0.5, 0.95, 1} {
		execPlan := assembledPlan()
		execPlan.SuccessProbability = p
		assert.Empty(t, ValidatePlan(execPlan, registry), "probability %v is valid", p)
	}

	for _, p := range []float64{-0.1, 1.01, 2} {
		execPlan := assembledPlan()
		execPlan.SuccessProbability = p
		violations := ValidatePlan(execPlan, registry)
		require.Len(t, violations, 1, "probability %v must be rejected", p)
		assert.Contains(t, violations[0], "success probability")
	}
}

func TestValidatePlan_CollectsEveryViolation(t *testing.T) {
	execPlan := assembledPlan()
	execPlan.Actions[0].Tool = "nmap"
	execPlan.Actions[1].Dependencies = []types.ID{types.NewID()}
	execPlan.SuccessProbability = 1.5
	execPlan.Goals[0].Priority = 0

	violations := ValidatePlan(execPlan, newPlannerRegistry(t))

	assert.Len(t, violations, 4, "the gate reports every violation, not just the first")
}

func TestPlanningOrchestrator_ValidatesAssembledPlan(t *testing.T) {
	mock := providers.NewMockProvider([]string{
		`{"goals": [{"description": "One thing", "estimated_duration_ms": 30000}]}`,
		`{"actions": [{"description": "do it", "tool": "echo"}]}`,
		`{"strategies": []}`,
	})

	orchestrator := NewPlanningOrchestrator(mock, newPlannerRegistry(t))
	defer orchestrator.Close()

	events, cleanup := orchestrator.Events().Subscribe(context.Background())
	defer cleanup()

	execPlan, err := orchestrator.CreateExecutionPlan(context.Background(), "one thing", plan.QueryIntent{Type: "task"}, nil)
	require.NoError(t, err)
	assert.Empty(t, ValidatePlan(execPlan, nil))

	sawValidated := false
	timeout := time.After(time.Second)
drain:
	for {
		select {
		case ev := <-events:
			switch ev.Type {
			case EventPlanValidated:
				sawValidated = true
				assert.Equal(t, execPlan.ID, ev.PlanID)
			case EventPlanCreated:
				break drain
			}
		case <-timeout:
			t.Fatal("timeout draining events")
		}
	}

	assert.True(t, sawValidated, "validation runs before the plan is announced")
}
