package plan

import (
	"testing"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

func testGoal(id string, priority int) Goal {
	return Goal{
		ID:                types.ID(id),
		Description:       "goal " + id,
		Priority:          priority,
		EstimatedDuration: 2 * time.Second,
	}
}

func TestOwningGoal(t *testing.T) {
	parent := testGoal("g1", 5)
	sub := testGoal("s1", 5)
	sub.ParentGoal = parent.ID
	standalone := testGoal("g2", 3)

	p := &ExecutionPlan{
		ID:       types.ID("p1"),
		Goals:    []Goal{parent, standalone},
		Subgoals: []Goal{sub, standalone},
	}

	tests := []struct {
		name      string
		subgoalID types.ID
		expected  types.ID
	}{
		{
			name:      "subgoal with parent resolves to parent",
			subgoalID: sub.ID,
			expected:  parent.ID,
		},
		{
			name:      "subgoal without parent resolves to itself",
			subgoalID: standalone.ID,
			expected:  standalone.ID,
		},
		{
			name:      "unresolvable reference returns the raw key",
			subgoalID: types.ID("ghost"),
			expected:  types.ID("ghost"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAction("a1")
			a.SubgoalID = tt.subgoalID
			if got := p.OwningGoal(&a); got != tt.expected {
				t.Errorf("OwningGoal() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestExecutionPlan_Validate(t *testing.T) {
	valid := func() *ExecutionPlan {
		a1 := testAction("a1")
		a1.EstimatedDuration = 2 * time.Second
		a2 := testAction("a2", "a1")
		a2.EstimatedDuration = 2 * time.Second
		return &ExecutionPlan{
			ID:      types.ID("p1"),
			Goals:   []Goal{testGoal("g1", 5)},
			Actions: []Action{a1, a2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*ExecutionPlan)
		wantErr bool
	}{
		{
			name:    "valid plan",
			mutate:  func(p *ExecutionPlan) {},
			wantErr: false,
		},
		{
			name: "dependency on unknown action",
			mutate: func(p *ExecutionPlan) {
				p.Actions[1].Dependencies = []types.ID{"ghost"}
			},
			wantErr: true,
		},
		{
			name: "duplicate action id",
			mutate: func(p *ExecutionPlan) {
				p.Actions[1].ID = p.Actions[0].ID
			},
			wantErr: true,
		},
		{
			name: "goal priority out of range",
			mutate: func(p *ExecutionPlan) {
				p.Goals[0].Priority = 11
			},
			wantErr: true,
		},
		{
			name: "action duration below floor",
			mutate: func(p *ExecutionPlan) {
				p.Actions[0].EstimatedDuration = 10 * time.Millisecond
			},
			wantErr: true,
		},
		{
			name: "missing plan id",
			mutate: func(p *ExecutionPlan) {
				p.ID = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRiskLevel_IsHighRisk(t *testing.T) {
	tests := []struct {
		name     string
		level    RiskLevel
		expected bool
	}{
		{name: "low is not high risk", level: RiskLevelLow, expected: false},
		{name: "medium is not high risk", level: RiskLevelMedium, expected: false},
		{name: "high is high risk", level: RiskLevelHigh, expected: true},
		{name: "critical is high risk", level: RiskLevelCritical, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.IsHighRisk(); got != tt.expected {
				t.Errorf("IsHighRisk() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRiskLevel_Ordinal(t *testing.T) {
	order := []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical}
	for i := 1; i < len(order); i++ {
		if order[i-1].Ordinal() >= order[i].Ordinal() {
			t.Errorf("%s ordinal %d not below %s ordinal %d",
				order[i-1], order[i-1].Ordinal(), order[i], order[i].Ordinal())
		}
	}
}
