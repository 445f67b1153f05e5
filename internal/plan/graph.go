package plan

import (
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// TopologicalOrder returns the actions reordered so that each action's
// dependencies appear before the action itself. The traversal is
// depth-first and memoized by a visited set: an action already emitted is
// never revisited, so a self-referencing or mutually-referencing pair is
// emitted without looping instead of being detected as a cycle. Dependency
// ids that match no action in the slice are ignored.
//
// The input slice is not modified.
func TopologicalOrder(actions []Action) []Action {
	index := make(map[types.ID]int, len(actions))
	for i := range actions {
		index[actions[i].ID] = i
	}

	visited := make(map[types.ID]bool, len(actions))
	ordered := make([]Action, 0, len(actions))

	var visit func(a *Action)
	visit = func(a *Action) {
		if visited[a.ID] {
			return
		}
		// Marked before descending so cyclic references terminate.
		visited[a.ID] = true
		for _, dep := range a.Dependencies {
			if j, ok := index[dep]; ok {
				visit(&actions[j])
			}
		}
		ordered = append(ordered, *a)
	}

	for i := range actions {
		visit(&actions[i])
	}

	return ordered
}

// PartitionBatches splits the actions into dependency-ordered batches of at
// most maxConcurrent members. Each round takes the "ready set": unplaced
// actions whose every dependency is already placed in a prior batch. When
// the ready set is empty while actions remain (a dependency cycle, or a
// dependency on an action outside the slice), up to maxConcurrent of the
// remaining actions are force-enqueued regardless of unmet dependencies, so
// construction always terminates. Only the cyclic subset loses the
// dependency-before-dependent guarantee.
//
// A maxConcurrent below 1 is treated as 1. The input slice is not modified.
func PartitionBatches(actions []Action, maxConcurrent int) [][]Action {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	placed := make(map[types.ID]bool, len(actions))
	var batches [][]Action

	for len(placed) < len(actions) {
		var ready []Action
		for i := range actions {
			if placed[actions[i].ID] {
				continue
			}
			if depsPlaced(&actions[i], placed) {
				ready = append(ready, actions[i])
			}
		}

		if len(ready) == 0 {
			for i := range actions {
				if !placed[actions[i].ID] {
					ready = append(ready, actions[i])
				}
			}
		}

		if len(ready) > maxConcurrent {
			ready = ready[:maxConcurrent]
		}

		for i := range ready {
			placed[ready[i].ID] = true
		}
		batches = append(batches, ready)
	}

	return batches
}

func depsPlaced(a *Action, placed map[types.ID]bool) bool {
	for _, dep := range a.Dependencies {
		if !placed[dep] {
			return false
		}
	}
	return true
}
