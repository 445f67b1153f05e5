package planning

import (
	"math"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// The provider returns free text. Everything in this file is the
// parse-or-default boundary that turns extracted JSON proposals into model
// types: numeric fields are clamped, missing fields get defaults, and
// references between proposals are resolved by proposal id with unknown
// references dropped. Raw provider text never crosses this boundary.

const defaultPriority = 5

// goalProposal mirrors the JSON schema the goal extraction and
// decomposition prompts request.
type goalProposal struct {
	ID                  string   `json:"id"`
	Description         string   `json:"description"`
	Priority            float64  `json:"priority"`
	SuccessCriteria     []string `json:"success_criteria"`
	Dependencies        []string `json:"dependencies"`
	EstimatedDurationMS float64  `json:"estimated_duration_ms"`
	RequiredResources   []string `json:"required_resources"`
}

// actionProposal mirrors the JSON schema the action planning prompt
// requests.
type actionProposal struct {
	ID                   string         `json:"id"`
	Description          string         `json:"description"`
	Tool                 string         `json:"tool"`
	Parameters           map[string]any `json:"parameters"`
	EstimatedDurationMS  float64        `json:"estimated_duration_ms"`
	Dependencies         []string       `json:"dependencies"`
	SuccessCriteria      []string       `json:"success_criteria"`
	ErrorStrategy        string         `json:"error_strategy"`
	MaxRetries           float64        `json:"max_retries"`
	TimeoutMS            float64        `json:"timeout_ms"`
	ResourceRequirements []string       `json:"resource_requirements"`
}

// fallbackProposal mirrors the JSON schema the fallback strategy prompt
// requests.
type fallbackProposal struct {
	Condition            string   `json:"condition"`
	Action               string   `json:"action"`
	Description          string   `json:"description"`
	SuccessProbability   float64  `json:"success_probability"`
	ResourceRequirements []string `json:"resource_requirements"`
}

// Envelope types the prompts ask the provider to wrap lists in.
type goalEnvelope struct {
	Goals []goalProposal `json:"goals"`
}

type subgoalEnvelope struct {
	Subgoals []goalProposal `json:"subgoals"`
}

type actionEnvelope struct {
	Actions []actionProposal `json:"actions"`
}

type fallbackEnvelope struct {
	Strategies []fallbackProposal `json:"strategies"`
}

// clampPriority maps a proposed priority into [1,10], defaulting when the
// field was absent.
func clampPriority(p float64) int {
	if p == 0 {
		return defaultPriority
	}
	v := int(math.Round(p))
	if v < plan.MinPriority {
		return plan.MinPriority
	}
	if v > plan.MaxPriority {
		return plan.MaxPriority
	}
	return v
}

// floorDuration converts a proposed millisecond estimate to a duration no
// smaller than the model floor.
func floorDuration(ms float64) time.Duration {
	d := time.Duration(ms) * time.Millisecond
	if d < plan.MinDuration {
		return plan.MinDuration
	}
	return d
}

// clamp01 bounds a probability to [0,1].
func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// assignID converts a proposal id into a unique model id: valid UUIDs are
// kept, everything else gets a fresh id, and collisions within one plan are
// replaced.
func assignID(proposalID string, seen map[types.ID]bool) types.ID {
	id := types.OrNewID(proposalID)
	for seen[id] {
		id = types.NewID()
	}
	seen[id] = true
	return id
}

// goalsFromProposals converts goal proposals into goals, resolving
// inter-goal dependencies by proposal id and truncating to max. Unknown
// dependency references are dropped.
func goalsFromProposals(proposals []goalProposal, max int, seen map[types.ID]bool) []plan.Goal {
	if len(proposals) > max {
		proposals = proposals[:max]
	}

	byProposalID := make(map[string]types.ID, len(proposals))
	goals := make([]plan.Goal, 0, len(proposals))
	kept := make([]goalProposal, 0, len(proposals))

	for _, p := range proposals {
		if p.Description == "" {
			continue
		}
		id := assignID(p.ID, seen)
		if p.ID != "" {
			byProposalID[p.ID] = id
		}
		goals = append(goals, plan.Goal{
			ID:                id,
			Description:       p.Description,
			Priority:          clampPriority(p.Priority),
			SuccessCriteria:   p.SuccessCriteria,
			EstimatedDuration: floorDuration(p.EstimatedDurationMS),
			RequiredResources: p.RequiredResources,
		})
		kept = append(kept, p)
	}

	for i, p := range kept {
		for _, dep := range p.Dependencies {
			if depID, ok := byProposalID[dep]; ok && depID != goals[i].ID {
				goals[i].Dependencies = append(goals[i].Dependencies, depID)
			}
		}
	}

	return goals
}

// subgoalsFromProposals converts decomposition proposals into subgoals of
// parent. The parent's priority is inherited when the proposal carries none.
func subgoalsFromProposals(parent *plan.Goal, proposals []goalProposal, seen map[types.ID]bool) []plan.Goal {
	subgoals := make([]plan.Goal, 0, len(proposals))
	for _, p := range proposals {
		if p.Description == "" {
			continue
		}
		priority := parent.Priority
		if p.Priority != 0 {
			priority = clampPriority(p.Priority)
		}
		subgoals = append(subgoals, plan.Goal{
			ID:                assignID(p.ID, seen),
			Description:       p.Description,
			Priority:          priority,
			SuccessCriteria:   p.SuccessCriteria,
			EstimatedDuration: floorDuration(p.EstimatedDurationMS),
			RequiredResources: p.RequiredResources,
			ParentGoal:        parent.ID,
		})
	}
	return subgoals
}

// actionsFromProposals converts action proposals for one subgoal into
// actions. Proposals whose tool is not in registered are dropped through
// onDrop and never enter the result. Dependencies are resolved by proposal
// id against the surviving actions of this call; unknown references are
// dropped.
func actionsFromProposals(subgoalID types.ID, proposals []actionProposal, registered map[string]bool, seen map[types.ID]bool, onDrop func(tool, description string)) []plan.Action {
	byProposalID := make(map[string]types.ID, len(proposals))
	actions := make([]plan.Action, 0, len(proposals))
	kept := make([]actionProposal, 0, len(proposals))

	for _, p := range proposals {
		if p.Description == "" {
			continue
		}
		if !registered[p.Tool] {
			if onDrop != nil {
				onDrop(p.Tool, p.Description)
			}
			continue
		}

		id := assignID(p.ID, seen)
		if p.ID != "" {
			byProposalID[p.ID] = id
		}

		actions = append(actions, plan.Action{
			ID:                   id,
			Description:          p.Description,
			Tool:                 p.Tool,
			Parameters:           p.Parameters,
			EstimatedDuration:    floorDuration(p.EstimatedDurationMS),
			SuccessCriteria:      p.SuccessCriteria,
			ErrorHandling:        errorHandlingFromProposal(p),
			ResourceRequirements: p.ResourceRequirements,
			SubgoalID:            subgoalID,
		})
		kept = append(kept, p)
	}

	for i, p := range kept {
		for _, dep := range p.Dependencies {
			if depID, ok := byProposalID[dep]; ok && depID != actions[i].ID {
				actions[i].Dependencies = append(actions[i].Dependencies, depID)
			}
		}
	}

	return actions
}

func errorHandlingFromProposal(p actionProposal) plan.ErrorHandling {
	strategy := plan.ErrorStrategy(p.ErrorStrategy)
	if !strategy.IsValid() {
		strategy = plan.ErrorStrategyRetry
	}

	maxRetries := int(math.Round(p.MaxRetries))
	if maxRetries < 0 || p.MaxRetries == 0 {
		maxRetries = 2
	}

	timeout := time.Duration(p.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return plan.ErrorHandling{
		Strategy:   strategy,
		MaxRetries: maxRetries,
		Timeout:    timeout,
	}
}

// strategiesFromProposals converts fallback proposals, clamping their
// success probabilities into [0,1].
func strategiesFromProposals(proposals []fallbackProposal) []plan.FallbackStrategy {
	strategies := make([]plan.FallbackStrategy, 0, len(proposals))
	for _, p := range proposals {
		if p.Condition == "" || p.Action == "" {
			continue
		}
		strategies = append(strategies, plan.FallbackStrategy{
			Condition:            p.Condition,
			Action:               p.Action,
			Description:          p.Description,
			SuccessProbability:   clamp01(p.SuccessProbability),
			ResourceRequirements: p.ResourceRequirements,
		})
	}
	return strategies
}
