package plan

import (
	"fmt"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// QueryIntent is the upstream intent classifier's reading of the query.
// The planner carries it into the plan unmodified and never interprets it.
type QueryIntent struct {
	Type       string         `json:"type"`
	Confidence float64        `json:"confidence"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ExecutionPlan is the complete output of planning. It is created once by
// the planning orchestrator and treated as read-only input to execution:
// executing the same plan twice must not mutate it.
type ExecutionPlan struct {
	// ID is the unique identifier for this plan.
	ID types.ID `json:"id"`

	// OriginalQuery is the user query the plan was derived from.
	OriginalQuery string `json:"original_query"`

	// Intent is the upstream classification of the query.
	Intent QueryIntent `json:"intent"`

	// Goals are the top-level objectives extracted from the query.
	Goals []Goal `json:"goals"`

	// Subgoals are the decomposition units actions are planned against.
	// Goals that needed no decomposition appear here unchanged.
	Subgoals []Goal `json:"subgoals"`

	// Actions are the tool invocations that realize the subgoals. Every
	// action's dependencies reference other actions in this slice.
	Actions []Action `json:"actions"`

	// ResourceAllocation aggregates the tools, time, memory and cost the
	// plan needs.
	ResourceAllocation ResourceAllocation `json:"resource_allocation"`

	// Timeline lays the actions out in dependency-respecting phases.
	Timeline Timeline `json:"timeline"`

	// FallbackStrategies are optional recovery annotations.
	FallbackStrategies []FallbackStrategy `json:"fallback_strategies,omitempty"`

	// EstimatedDuration is the total estimated runtime across all actions.
	EstimatedDuration time.Duration `json:"estimated_duration"`

	// SuccessProbability is the planner's estimate, always within
	// [0.10, 0.95].
	SuccessProbability float64 `json:"success_probability"`

	// RiskAssessment lists identified risks and the overall risk level.
	RiskAssessment RiskAssessment `json:"risk_assessment"`

	// CreatedAt is the timestamp when the plan was created.
	CreatedAt time.Time `json:"created_at"`
}

// OwningGoal resolves the top-level goal an action belongs to: the action's
// subgoal's parent if it has one, otherwise the subgoal's own id. When the
// subgoal reference does not resolve at all, the raw SubgoalID is returned
// as-is; actions grouped under such a key never match a goal and never
// execute.
func (p *ExecutionPlan) OwningGoal(a *Action) types.ID {
	for i := range p.Subgoals {
		if p.Subgoals[i].ID != a.SubgoalID {
			continue
		}
		if !p.Subgoals[i].ParentGoal.IsZero() {
			return p.Subgoals[i].ParentGoal
		}
		return p.Subgoals[i].ID
	}
	return a.SubgoalID
}

// ActionByID returns the action with the given id, or nil.
func (p *ExecutionPlan) ActionByID(id types.ID) *Action {
	for i := range p.Actions {
		if p.Actions[i].ID == id {
			return &p.Actions[i]
		}
	}
	return nil
}

// Validate checks the structural invariants of a complete plan: every goal
// and action is individually valid, action ids are unique, and every action
// dependency references another action in the same plan.
func (p *ExecutionPlan) Validate() error {
	if p.ID.IsZero() {
		return fmt.Errorf("plan has no id")
	}

	for i := range p.Goals {
		if err := p.Goals[i].Validate(); err != nil {
			return err
		}
	}
	for i := range p.Subgoals {
		if err := p.Subgoals[i].Validate(); err != nil {
			return err
		}
	}

	seen := make(map[types.ID]bool, len(p.Actions))
	for i := range p.Actions {
		a := &p.Actions[i]
		if err := a.Validate(); err != nil {
			return err
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate action id %s", a.ID)
		}
		seen[a.ID] = true
	}

	for i := range p.Actions {
		for _, dep := range p.Actions[i].Dependencies {
			if !seen[dep] {
				return fmt.Errorf("action %s depends on unknown action %s", p.Actions[i].ID, dep)
			}
		}
	}

	return nil
}
