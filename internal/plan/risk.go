package plan

// RiskLevel represents the impact grade of a single risk or of a whole plan.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// IsValid returns true if the level is a known value.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// IsHighRisk returns true if the risk level is high or critical
func (l RiskLevel) IsHighRisk() bool {
	return l == RiskLevelHigh || l == RiskLevelCritical
}

// Ordinal returns a numeric value for comparing risk levels.
// Higher numbers indicate higher risk.
func (l RiskLevel) Ordinal() int {
	switch l {
	case RiskLevelLow:
		return 0
	case RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelCritical:
		return 3
	default:
		return 0
	}
}

// RiskType identifies the rule that produced a risk.
type RiskType string

const (
	// RiskToolUnavailable flags every tool-bound action: the named tool could
	// be unregistered or failing by the time the plan runs.
	RiskToolUnavailable RiskType = "tool_unavailable"

	// RiskTimeout flags actions whose duration estimate exceeds the
	// long-action threshold.
	RiskTimeout RiskType = "timeout"

	// RiskResourceConstraint flags actions that declare resource requirements.
	RiskResourceConstraint RiskType = "resource_constraint"
)

// Risk is one identified threat to plan execution.
type Risk struct {
	Type        RiskType  `json:"type"`
	Description string    `json:"description"`
	Probability float64   `json:"probability"`
	Impact      RiskLevel `json:"impact"`
	Mitigation  string    `json:"mitigation,omitempty"`
}

// RiskAssessment aggregates per-action risks into an overall level plus a
// deduplicated list of mitigations.
type RiskAssessment struct {
	Risks       []Risk    `json:"risks"`
	OverallRisk RiskLevel `json:"overall_risk"`
	Mitigations []string  `json:"mitigations,omitempty"`
}

// HighImpactCount returns the number of risks graded high. Critical risks
// are not included; any critical risk already forces the overall level.
func (a *RiskAssessment) HighImpactCount() int {
	n := 0
	for _, r := range a.Risks {
		if r.Impact == RiskLevelHigh {
			n++
		}
	}
	return n
}
