package planning

import (
	"fmt"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// BuildTimeline lays the actions out as dependency-respecting phases. Each
// phase is one unbounded batch from the shared partitioner, so an action
// joins a phase only once all of its dependencies are in earlier phases;
// a cycle forces the remaining actions into the current phase instead of
// stalling. Milestones carry the cumulative duration at the end of each
// phase and the critical path is a dependency-first ordering of every
// action id.
func BuildTimeline(actions []plan.Action) plan.Timeline {
	if len(actions) == 0 {
		return plan.Timeline{}
	}

	layers := plan.PartitionBatches(actions, len(actions))

	phases := make([]plan.Phase, 0, len(layers))
	milestones := make([]plan.Milestone, 0, len(layers))
	var elapsed time.Duration

	for i, layer := range layers {
		var duration time.Duration
		ids := make([]types.ID, 0, len(layer))
		for j := range layer {
			duration += layer[j].EstimatedDuration
			ids = append(ids, layer[j].ID)
		}
		elapsed += duration

		phases = append(phases, plan.Phase{
			Name:        fmt.Sprintf("Phase %d", i+1),
			Duration:    duration,
			Actions:     ids,
			Description: fmt.Sprintf("Phase %d with %d actions", i+1, len(layer)),
		})
		milestones = append(milestones, plan.Milestone{
			Name:   fmt.Sprintf("Phase %d complete", i+1),
			Offset: elapsed,
		})
	}

	ordered := plan.TopologicalOrder(actions)
	path := make([]types.ID, 0, len(ordered))
	for i := range ordered {
		path = append(path, ordered[i].ID)
	}

	return plan.Timeline{
		TotalDuration: elapsed,
		Phases:        phases,
		Milestones:    milestones,
		CriticalPath:  path,
	}
}
