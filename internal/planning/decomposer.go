package planning

import (
	"context"
	"log/slog"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// GoalDecomposer splits long-running goals into subgoals. Goals at or
// under the MaxDuration threshold pass through unchanged, which keeps
// them addressable by the executor's goal grouping.
type GoalDecomposer struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// NewGoalDecomposer creates a GoalDecomposer.
func NewGoalDecomposer(provider llm.Provider, cfg Config, logger *slog.Logger) *GoalDecomposer {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalDecomposer{
		provider: provider,
		config:   cfg.Normalize(),
		logger:   logger,
	}
}

// Decompose returns the subgoal list for the given goals. A goal whose
// estimated duration exceeds MaxDuration is replaced by the subgoals the
// provider proposes for it, each stamped with the goal's id as ParentGoal;
// every other goal is carried over as-is. A failed decomposition keeps the
// source goal undecomposed and logs a warning. The combined list is capped
// at MaxSubgoals.
func (d *GoalDecomposer) Decompose(ctx context.Context, goals []plan.Goal) ([]plan.Goal, error) {
	subgoals := make([]plan.Goal, 0, len(goals))
	seen := make(map[types.ID]bool, len(goals))
	for _, g := range goals {
		seen[g.ID] = true
	}

	for i := range goals {
		g := &goals[i]
		if g.EstimatedDuration <= d.config.MaxDuration {
			subgoals = append(subgoals, *g)
			continue
		}

		subs, err := d.decomposeGoal(ctx, g, seen)
		if err != nil {
			if ctx.Err() != nil {
				return nil, WrapPlanningError(ErrorTypeDecomposition, "goal decomposition aborted", ctx.Err())
			}
			d.logger.Warn("goal decomposition degraded, keeping goal undecomposed",
				"goal_id", g.ID,
				"error", err,
			)
			subgoals = append(subgoals, *g)
			continue
		}
		if len(subs) == 0 {
			subgoals = append(subgoals, *g)
			continue
		}

		d.logger.Debug("decomposed goal",
			"goal_id", g.ID,
			"subgoals", len(subs),
		)
		subgoals = append(subgoals, subs...)
	}

	if len(subgoals) > d.config.MaxSubgoals {
		subgoals = subgoals[:d.config.MaxSubgoals]
	}
	return subgoals, nil
}

func (d *GoalDecomposer) decomposeGoal(ctx context.Context, g *plan.Goal, seen map[types.ID]bool) ([]plan.Goal, error) {
	req := llm.NewCompletionRequest(d.config.Model,
		[]llm.Message{
			llm.NewSystemMessage(decompositionSystemPrompt()),
			llm.NewUserMessage(decompositionUserPrompt(g)),
		},
		llm.WithTemperature(d.config.Temperature),
	)

	resp, err := d.provider.Complete(ctx, req)
	if err != nil {
		return nil, WrapPlanningError(ErrorTypeDecomposition, "decomposition completion failed", err)
	}

	env, err := llm.ExtractJSONAs[subgoalEnvelope](resp.Message.Content)
	if err != nil {
		return nil, NewParseError("goal_decomposition", err)
	}

	return subgoalsFromProposals(g, env.Subgoals, seen), nil
}
