package planning

import (
	"fmt"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
)

// Fixed probabilities for the rule-based risk scan.
const (
	toolUnavailableProbability    = 0.1
	timeoutProbability            = 0.2
	resourceConstraintProbability = 0.15

	// longActionThreshold is the duration above which an action earns a
	// timeout risk.
	longActionThreshold = time.Minute
)

// AssessRisks runs the rule-based risk scan over the actions. Every
// tool-bound action contributes a tool_unavailable risk, every action
// estimated above the long-action threshold a timeout risk, and every
// action declaring resource requirements a resource_constraint risk. The
// assessment never consults the provider.
func AssessRisks(actions []plan.Action) plan.RiskAssessment {
	var risks []plan.Risk

	for i := range actions {
		a := &actions[i]

		if a.HasTool() {
			risks = append(risks, plan.Risk{
				Type:        plan.RiskToolUnavailable,
				Description: fmt.Sprintf("Tool %q may be unavailable for action %s", a.Tool, a.ID),
				Probability: toolUnavailableProbability,
				Impact:      plan.RiskLevelHigh,
				Mitigation:  "Verify tool availability before execution",
			})
		}
		if a.EstimatedDuration > longActionThreshold {
			risks = append(risks, plan.Risk{
				Type:        plan.RiskTimeout,
				Description: fmt.Sprintf("Action %s may exceed its time estimate", a.ID),
				Probability: timeoutProbability,
				Impact:      plan.RiskLevelMedium,
				Mitigation:  "Raise the action timeout or split the action",
			})
		}
		if len(a.ResourceRequirements) > 0 {
			risks = append(risks, plan.Risk{
				Type:        plan.RiskResourceConstraint,
				Description: fmt.Sprintf("Action %s declares resource requirements", a.ID),
				Probability: resourceConstraintProbability,
				Impact:      plan.RiskLevelMedium,
				Mitigation:  "Confirm required resources before execution",
			})
		}
	}

	assessment := plan.RiskAssessment{
		Risks:       risks,
		Mitigations: dedupeMitigations(risks),
	}
	assessment.OverallRisk = overallRisk(&assessment)
	return assessment
}

// overallRisk aggregates individual risks into a plan-wide level. Any
// critical-impact risk forces critical; more than two high-impact risks
// grade high; a single high-impact risk or more than five risks in total
// grade medium.
func overallRisk(a *plan.RiskAssessment) plan.RiskLevel {
	for _, r := range a.Risks {
		if r.Impact == plan.RiskLevelCritical {
			return plan.RiskLevelCritical
		}
	}
	high := a.HighImpactCount()
	switch {
	case high > 2:
		return plan.RiskLevelHigh
	case high >= 1 || len(a.Risks) > 5:
		return plan.RiskLevelMedium
	default:
		return plan.RiskLevelLow
	}
}

func dedupeMitigations(risks []plan.Risk) []string {
	seen := make(map[string]bool, len(risks))
	var out []string
	for _, r := range risks {
		if r.Mitigation == "" || seen[r.Mitigation] {
			continue
		}
		seen[r.Mitigation] = true
		out = append(out, r.Mitigation)
	}
	return out
}
