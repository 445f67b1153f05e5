package plan

import (
	"testing"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

func testAction(id string, deps ...string) Action {
	depIDs := make([]types.ID, 0, len(deps))
	for _, d := range deps {
		depIDs = append(depIDs, types.ID(d))
	}
	return Action{
		ID:           types.ID(id),
		Description:  "action " + id,
		Tool:         "echo",
		Dependencies: depIDs,
	}
}

func actionIDs(actions []Action) []string {
	ids := make([]string, 0, len(actions))
	for i := range actions {
		ids = append(ids, string(actions[i].ID))
	}
	return ids
}

func TestTopologicalOrder_Chain(t *testing.T) {
	actions := []Action{
		testAction("a3", "a2"),
		testAction("a1"),
		testAction("a2", "a1"),
	}

	ordered := TopologicalOrder(actions)

	got := actionIDs(ordered)
	want := []string{"a1", "a2", "a3"}
	if len(got) != len(want) {
		t.Fatalf("ordered length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ordered[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTopologicalOrder_Diamond(t *testing.T) {
	actions := []Action{
		testAction("d", "b", "c"),
		testAction("b", "a"),
		testAction("c", "a"),
		testAction("a"),
	}

	ordered := TopologicalOrder(actions)

	if len(ordered) != 4 {
		t.Fatalf("ordered length = %d, want 4", len(ordered))
	}

	position := make(map[string]int)
	for i, id := range actionIDs(ordered) {
		if _, dup := position[id]; dup {
			t.Fatalf("action %s emitted more than once", id)
		}
		position[id] = i
	}

	edges := [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}
	for _, e := range edges {
		if position[e[0]] > position[e[1]] {
			t.Errorf("dependency %s emitted after dependent %s", e[0], e[1])
		}
	}
}

func TestTopologicalOrder_MutualCycle(t *testing.T) {
	actions := []Action{
		testAction("a", "b"),
		testAction("b", "a"),
	}

	ordered := TopologicalOrder(actions)

	if len(ordered) != 2 {
		t.Fatalf("ordered length = %d, want 2", len(ordered))
	}
	seen := map[string]bool{}
	for _, id := range actionIDs(ordered) {
		seen[id] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("both cycle members must be emitted, got %v", actionIDs(ordered))
	}
}

func TestTopologicalOrder_UnknownDependency(t *testing.T) {
	actions := []Action{
		testAction("a1", "ghost"),
		testAction("a2", "a1"),
	}

	ordered := TopologicalOrder(actions)

	got := actionIDs(ordered)
	if len(got) != 2 || got[0] != "a1" || got[1] != "a2" {
		t.Errorf("ordered = %v, want [a1 a2]", got)
	}
}

func TestTopologicalOrder_DoesNotModifyInput(t *testing.T) {
	actions := []Action{
		testAction("a2", "a1"),
		testAction("a1"),
	}

	TopologicalOrder(actions)

	if actions[0].ID != "a2" || actions[1].ID != "a1" {
		t.Errorf("input slice was reordered: %v", actionIDs(actions))
	}
}

func TestPartitionBatches_IndependentActions(t *testing.T) {
	actions := []Action{
		testAction("a1"),
		testAction("a2"),
		testAction("a3"),
	}

	batches := PartitionBatches(actions, 2)

	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(batches))
	}
	if got := actionIDs(batches[0]); len(got) != 2 || got[0] != "a1" || got[1] != "a2" {
		t.Errorf("batch 0 = %v, want [a1 a2]", got)
	}
	if got := actionIDs(batches[1]); len(got) != 1 || got[0] != "a3" {
		t.Errorf("batch 1 = %v, want [a3]", got)
	}
}

func TestPartitionBatches_LinearChain(t *testing.T) {
	actions := []Action{
		testAction("a1"),
		testAction("a2", "a1"),
		testAction("a3", "a2"),
	}

	batches := PartitionBatches(actions, 5)

	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(batches))
	}
	for i, want := range []string{"a1", "a2", "a3"} {
		if got := actionIDs(batches[i]); len(got) != 1 || got[0] != want {
			t.Errorf("batch %d = %v, want [%s]", i, got, want)
		}
	}
}

func TestPartitionBatches_MutualCycle(t *testing.T) {
	actions := []Action{
		testAction("a", "b"),
		testAction("b", "a"),
	}

	batches := PartitionBatches(actions, 3)

	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1 forced batch", len(batches))
	}
	if got := actionIDs(batches[0]); len(got) != 2 {
		t.Errorf("forced batch = %v, want both cycle members", got)
	}
}

func TestPartitionBatches_CycleWithDownstreamAction(t *testing.T) {
	actions := []Action{
		testAction("a", "b"),
		testAction("b", "a"),
		testAction("c", "b"),
	}

	batches := PartitionBatches(actions, 2)

	// Round one finds nothing ready and force-enqueues two of the cycle;
	// once b is placed, c becomes ready normally.
	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(batches))
	}
	if got := actionIDs(batches[0]); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("batch 0 = %v, want forced [a b]", got)
	}
	if got := actionIDs(batches[1]); len(got) != 1 || got[0] != "c" {
		t.Errorf("batch 1 = %v, want [c]", got)
	}
}

func TestPartitionBatches_FullCycleTerminationBound(t *testing.T) {
	// Six actions in one big cycle: nothing is ever ready, every round is
	// forced, so construction finishes in exactly ceil(6/2) rounds.
	actions := []Action{
		testAction("a1", "a6"),
		testAction("a2", "a1"),
		testAction("a3", "a2"),
		testAction("a4", "a3"),
		testAction("a5", "a4"),
		testAction("a6", "a5"),
	}

	batches := PartitionBatches(actions, 2)

	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(batches))
	}
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	if total != 6 {
		t.Errorf("placed %d actions, want 6", total)
	}
}

func TestPartitionBatches_DependencyOrdering(t *testing.T) {
	actions := []Action{
		testAction("a"),
		testAction("b"),
		testAction("c", "a"),
		testAction("d", "a", "b"),
		testAction("e", "c", "d"),
	}

	batches := PartitionBatches(actions, 2)

	batchIndex := make(map[string]int)
	for i, batch := range batches {
		for _, id := range actionIDs(batch) {
			batchIndex[id] = i
		}
	}

	edges := [][2]string{{"a", "c"}, {"a", "d"}, {"b", "d"}, {"c", "e"}, {"d", "e"}}
	for _, e := range edges {
		if batchIndex[e[0]] >= batchIndex[e[1]] {
			t.Errorf("dependency %s in batch %d, dependent %s in batch %d",
				e[0], batchIndex[e[0]], e[1], batchIndex[e[1]])
		}
	}
}

func TestPartitionBatches_EmptyInput(t *testing.T) {
	batches := PartitionBatches(nil, 3)
	if len(batches) != 0 {
		t.Errorf("batches = %d, want 0", len(batches))
	}
}

func TestPartitionBatches_ZeroConcurrency(t *testing.T) {
	actions := []Action{
		testAction("a1"),
		testAction("a2"),
	}

	batches := PartitionBatches(actions, 0)

	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2 with concurrency clamped to 1", len(batches))
	}
	for i, b := range batches {
		if len(b) != 1 {
			t.Errorf("batch %d has %d actions, want 1", i, len(b))
		}
	}
}
