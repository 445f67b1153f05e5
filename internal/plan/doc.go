// Package plan defines the planning data model shared by the planner and
// the executor: goals, actions, resource allocations, timelines, risks,
// fallback strategies, and the ExecutionPlan that aggregates them. It also
// provides the dependency-graph algorithms both sides rely on.
//
// # Data Model
//
// ExecutionPlan is the central type. It is produced once by the planning
// orchestrator and consumed read-only by the execution orchestrator;
// executing a plan never mutates it. The types inside it:
//
//   - Goal: a top-level objective, or a decomposition unit carrying its
//     parent goal. Priorities are clamped to [1,10] and duration estimates
//     floored to MinDuration before a goal reaches a plan.
//   - Action: a single tool invocation with explicit dependencies on other
//     actions in the same plan and a per-action error handling policy. An
//     action only ever references a tool that was registered when the plan
//     was created.
//   - ResourceAllocation, Timeline, RiskAssessment, FallbackStrategy:
//     derived annotations the planner computes from the action set.
//
// # Graph Algorithms
//
// TopologicalOrder produces a dependencies-first full ordering of an action
// slice. PartitionBatches splits an action slice into concurrency-bounded,
// dependency-ordered batches. Both tolerate malformed graphs: ordering
// skips already-visited actions instead of looping, and batch partitioning
// force-enqueues remaining actions when a cycle leaves no action ready.
// Termination is guaranteed for any input, which is why the executor can
// consume plans without validating them first.
//
// The timeline builder and the batch scheduler both layer actions with
// PartitionBatches; the timeline uses an unbounded batch size so each layer
// becomes one phase.
package plan
