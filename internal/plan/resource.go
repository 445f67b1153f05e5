package plan

import (
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// AllocationPriority buckets a plan's resource demand by average action
// duration.
type AllocationPriority string

const (
	AllocationPriorityLow      AllocationPriority = "low"
	AllocationPriorityMedium   AllocationPriority = "medium"
	AllocationPriorityHigh     AllocationPriority = "high"
	AllocationPriorityCritical AllocationPriority = "critical"
)

// IsValid returns true if the priority is a known value.
func (p AllocationPriority) IsValid() bool {
	switch p {
	case AllocationPriorityLow, AllocationPriorityMedium, AllocationPriorityHigh, AllocationPriorityCritical:
		return true
	}
	return false
}

// TimeAllocation is the plan's time budget: the total across all actions
// plus the per-action breakdown.
type TimeAllocation struct {
	Total     time.Duration              `json:"total"`
	PerAction map[types.ID]time.Duration `json:"per_action,omitempty"`
}

// ResourceAllocation aggregates what a plan needs to run. It is derived
// from the plan's actions and never independently mutated.
type ResourceAllocation struct {
	EstimatedCost      float64            `json:"estimated_cost"`
	RequiredTools      []string           `json:"required_tools"`
	TimeAllocation     TimeAllocation     `json:"time_allocation"`
	MemoryRequirements int64              `json:"memory_requirements"`
	Priority           AllocationPriority `json:"priority"`
}
