package planning

import (
	"context"
	"log/slog"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// DroppedAction records an action proposal discarded because the tool it
// named is not in the registry.
type DroppedAction struct {
	Tool        string
	Description string
	SubgoalID   types.ID
}

// ActionPlanner proposes concrete tool invocations for each subgoal. The
// provider is only ever offered tools that are currently registered, and
// any proposal that names a tool outside that set is dropped outright.
// Dropped proposals are never rewritten to a different tool and never
// retried with the provider.
type ActionPlanner struct {
	provider llm.Provider
	registry tool.Registry
	config   Config
	logger   *slog.Logger
}

// NewActionPlanner creates an ActionPlanner backed by the given registry.
func NewActionPlanner(provider llm.Provider, registry tool.Registry, cfg Config, logger *slog.Logger) *ActionPlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionPlanner{
		provider: provider,
		registry: registry,
		config:   cfg.Normalize(),
		logger:   logger,
	}
}

// PlanActions returns the actions for the given subgoals in dependency
// order, plus the proposals that were dropped for naming unregistered
// tools. A subgoal whose proposal round fails is planned with no actions
// and a warning. The kept list is capped at MaxActions before ordering.
func (p *ActionPlanner) PlanActions(ctx context.Context, subgoals []plan.Goal) ([]plan.Action, []DroppedAction, error) {
	descriptors := p.registry.GetAllTools()
	registered := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		registered[d.Name] = true
	}

	var (
		actions []plan.Action
		dropped []DroppedAction
	)
	seen := make(map[types.ID]bool)

	for i := range subgoals {
		sg := &subgoals[i]

		proposed, err := p.planSubgoal(ctx, sg, descriptors, registered, seen, &dropped)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, WrapPlanningError(ErrorTypeActionPlanning, "action planning aborted", ctx.Err())
			}
			p.logger.Warn("action planning degraded, subgoal planned without actions",
				"subgoal_id", sg.ID,
				"error", err,
			)
			continue
		}
		actions = append(actions, proposed...)
	}

	if len(actions) > p.config.MaxActions {
		actions = actions[:p.config.MaxActions]
		pruneDanglingDeps(actions)
	}

	return plan.TopologicalOrder(actions), dropped, nil
}

// pruneDanglingDeps drops dependency references to actions that were cut
// by the MaxActions truncation, keeping every remaining reference
// resolvable within the slice.
func pruneDanglingDeps(actions []plan.Action) {
	kept := make(map[types.ID]bool, len(actions))
	for i := range actions {
		kept[actions[i].ID] = true
	}
	for i := range actions {
		var deps []types.ID
		for _, dep := range actions[i].Dependencies {
			if kept[dep] {
				deps = append(deps, dep)
			}
		}
		actions[i].Dependencies = deps
	}
}

func (p *ActionPlanner) planSubgoal(ctx context.Context, sg *plan.Goal, descriptors []tool.Descriptor, registered map[string]bool, seen map[types.ID]bool, dropped *[]DroppedAction) ([]plan.Action, error) {
	req := llm.NewCompletionRequest(p.config.Model,
		[]llm.Message{
			llm.NewSystemMessage(actionPlanningSystemPrompt(descriptors, p.config.MaxActions)),
			llm.NewUserMessage(actionPlanningUserPrompt(sg)),
		},
		llm.WithTemperature(p.config.Temperature),
	)

	resp, err := p.provider.Complete(ctx, req)
	if err != nil {
		return nil, WrapPlanningError(ErrorTypeActionPlanning, "action planning completion failed", err)
	}

	env, err := llm.ExtractJSONAs[actionEnvelope](resp.Message.Content)
	if err != nil {
		return nil, NewParseError("action_planning", err)
	}

	onDrop := func(toolName, description string) {
		p.logger.Warn("dropping action naming unregistered tool",
			"tool", toolName,
			"subgoal_id", sg.ID,
		)
		*dropped = append(*dropped, DroppedAction{
			Tool:        toolName,
			Description: description,
			SubgoalID:   sg.ID,
		})
	}

	return actionsFromProposals(sg.ID, env.Actions, registered, seen, onDrop), nil
}
