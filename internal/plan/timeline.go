package plan

import (
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// Phase is one dependency-respecting layer of a timeline. Every action in
// a phase has all of its dependencies in earlier phases, except when a
// cycle forced placement (see PartitionBatches).
type Phase struct {
	Name        string        `json:"name"`
	Duration    time.Duration `json:"duration"`
	Actions     []types.ID    `json:"actions"`
	Description string        `json:"description,omitempty"`
}

// Milestone marks the end of a phase. Offset is the cumulative duration
// from plan start.
type Milestone struct {
	Name   string        `json:"name"`
	Offset time.Duration `json:"offset"`
}

// Timeline lays the plan's actions out in phases. CriticalPath is a
// dependency-first full ordering of every action, not a duration-weighted
// longest path.
type Timeline struct {
	TotalDuration time.Duration `json:"total_duration"`
	Phases        []Phase       `json:"phases"`
	Milestones    []Milestone   `json:"milestones"`
	CriticalPath  []types.ID    `json:"critical_path"`
}
