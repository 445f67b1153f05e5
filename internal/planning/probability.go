package planning

import (
	"math"

	"github.com/wsyeabsera/clear-ai-sub000/internal/memory"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
)

// Success probability bounds and scoring weights.
const (
	minSuccessProbability = 0.1
	maxSuccessProbability = 0.95
	perActionPenalty      = 0.05
	episodicBonus         = 0.05
)

// EstimateSuccessProbability scores the plan's chance of completing. The
// base score falls by a fixed amount per action (floored), the overall
// risk level subtracts its penalty, and any episodic history earns a small
// bonus. The result is rounded to two decimals and always lands in
// [0.10, 0.95] regardless of input.
func EstimateSuccessProbability(actions []plan.Action, assessment plan.RiskAssessment, snapshot *memory.Snapshot) float64 {
	base := 1 - float64(len(actions))*perActionPenalty
	if base < minSuccessProbability {
		base = minSuccessProbability
	}

	score := base - riskPenalty(assessment.OverallRisk)
	if snapshot.HasEpisodic() {
		score += episodicBonus
	}

	score = math.Round(score*100) / 100
	return math.Min(maxSuccessProbability, math.Max(minSuccessProbability, score))
}

// riskPenalty maps an overall risk level to its score penalty. The zero
// level, left behind when risk assessment is disabled, costs nothing.
func riskPenalty(level plan.RiskLevel) float64 {
	switch level {
	case plan.RiskLevelLow:
		return 0.1
	case plan.RiskLevelMedium:
		return 0.2
	case plan.RiskLevelHigh:
		return 0.4
	case plan.RiskLevelCritical:
		return 0.6
	default:
		return 0
	}
}
