package planning

import (
	"fmt"

	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// ValidatePlan checks the structural invariants of an assembled plan and
// returns every violation found, one message per problem. It mirrors
// ExecutionPlan.Validate but keeps going past the first failure, and adds
// the two contracts only the planner can check: every bound tool is
// registered, and the success probability is a valid probability.
//
// A nil registry skips the tool check, for callers validating a plan
// outside any registry. An empty return means the plan is valid.
func ValidatePlan(execPlan *plan.ExecutionPlan, registry tool.Registry) []string {
	if execPlan == nil {
		return []string{"plan is nil"}
	}

	var violations []string

	if execPlan.ID.IsZero() {
		violations = append(violations, "plan has no id")
	}

	for i := range execPlan.Goals {
		if err := execPlan.Goals[i].Validate(); err != nil {
			violations = append(violations, err.Error())
		}
	}
	for i := range execPlan.Subgoals {
		if err := execPlan.Subgoals[i].Validate(); err != nil {
			violations = append(violations, err.Error())
		}
	}

	ids := make(map[types.ID]bool, len(execPlan.Actions))
	for i := range execPlan.Actions {
		a := &execPlan.Actions[i]
		if err := a.Validate(); err != nil {
			violations = append(violations, err.Error())
		}
		if ids[a.ID] {
			violations = append(violations, fmt.Sprintf("duplicate action id %s", a.ID))
		}
		ids[a.ID] = true
	}

	for i := range execPlan.Actions {
		a := &execPlan.Actions[i]
		for _, dep := range a.Dependencies {
			if !ids[dep] {
				violations = append(violations, fmt.Sprintf("action %s depends on unknown action %s", a.ID, dep))
			}
		}
	}

	if registry != nil {
		registered := make(map[string]bool)
		for _, name := range registry.GetToolNames() {
			registered[name] = true
		}
		for i := range execPlan.Actions {
			a := &execPlan.Actions[i]
			if a.HasTool() && !registered[a.Tool] {
				violations = append(violations, fmt.Sprintf("action %s is bound to unregistered tool %q", a.ID, a.Tool))
			}
		}
	}

	if execPlan.SuccessProbability < 0 || execPlan.SuccessProbability > 1 {
		violations = append(violations, fmt.Sprintf("success probability %.2f outside [0,1]", execPlan.SuccessProbability))
	}

	return violations
}
