package plan

import (
	"fmt"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// Priority bounds for goals. Values outside the range are clamped at the
// parse boundary, never rejected.
const (
	MinPriority = 1
	MaxPriority = 10
)

// MinDuration is the floor applied to every goal and action duration
// estimate. Proposals below it are raised to it.
const MinDuration = time.Second

// Goal is a top-level objective extracted from a user query, or a
// decomposition unit derived from one. A decomposed unit carries the
// source goal in ParentGoal; a goal that needed no decomposition passes
// into the subgoal list unchanged with ParentGoal left zero.
//
// Goals are immutable once placed in a plan.
type Goal struct {
	ID                types.ID      `json:"id"`
	Description       string        `json:"description"`
	Priority          int           `json:"priority"`
	SuccessCriteria   []string      `json:"success_criteria,omitempty"`
	Dependencies      []types.ID    `json:"dependencies,omitempty"`
	EstimatedDuration time.Duration `json:"estimated_duration"`
	RequiredResources []string      `json:"required_resources,omitempty"`
	ParentGoal        types.ID      `json:"parent_goal,omitempty"`
}

// Validate checks the structural invariants of a goal.
func (g *Goal) Validate() error {
	if g.ID.IsZero() {
		return fmt.Errorf("goal has no id")
	}
	if g.Description == "" {
		return fmt.Errorf("goal %s has no description", g.ID)
	}
	if g.Priority < MinPriority || g.Priority > MaxPriority {
		return fmt.Errorf("goal %s priority %d outside [%d,%d]", g.ID, g.Priority, MinPriority, MaxPriority)
	}
	if g.EstimatedDuration < MinDuration {
		return fmt.Errorf("goal %s duration %s below minimum %s", g.ID, g.EstimatedDuration, MinDuration)
	}
	return nil
}

// IsSubgoalOf reports whether the goal was decomposed out of parent.
func (g *Goal) IsSubgoalOf(parent types.ID) bool {
	return !g.ParentGoal.IsZero() && g.ParentGoal == parent
}
