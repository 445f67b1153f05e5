package planning

import (
	"sort"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// Allocation priority ceilings, compared against the average action
// duration. An average above the high ceiling buckets as critical.
const (
	lowAllocationCeiling    = time.Minute
	mediumAllocationCeiling = 2 * time.Minute
	highAllocationCeiling   = 5 * time.Minute
)

// AllocateResources derives the plan-wide resource envelope from the
// planned actions. It is fully deterministic: tools are deduplicated and
// sorted, the time budget is the sum of action durations, and memory and
// cost scale linearly with the action count.
func AllocateResources(actions []plan.Action) plan.ResourceAllocation {
	toolSet := make(map[string]bool)
	perAction := make(map[types.ID]time.Duration, len(actions))
	var total time.Duration

	for i := range actions {
		a := &actions[i]
		if a.HasTool() {
			toolSet[a.Tool] = true
		}
		perAction[a.ID] = a.EstimatedDuration
		total += a.EstimatedDuration
	}

	tools := make([]string, 0, len(toolSet))
	for name := range toolSet {
		tools = append(tools, name)
	}
	sort.Strings(tools)

	return plan.ResourceAllocation{
		EstimatedCost: float64(len(actions)) * CostPerAction,
		RequiredTools: tools,
		TimeAllocation: plan.TimeAllocation{
			Total:     total,
			PerAction: perAction,
		},
		MemoryRequirements: int64(len(actions)) * MemoryPerAction,
		Priority:           allocationPriority(actions, total),
	}
}

// allocationPriority buckets by average action duration. A plan with no
// actions is low priority.
func allocationPriority(actions []plan.Action, total time.Duration) plan.AllocationPriority {
	if len(actions) == 0 {
		return plan.AllocationPriorityLow
	}
	avg := total / time.Duration(len(actions))
	switch {
	case avg <= lowAllocationCeiling:
		return plan.AllocationPriorityLow
	case avg <= mediumAllocationCeiling:
		return plan.AllocationPriorityMedium
	case avg <= highAllocationCeiling:
		return plan.AllocationPriorityHigh
	default:
		return plan.AllocationPriorityCritical
	}
}
