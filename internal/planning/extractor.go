package planning

import (
	"context"
	"log/slog"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/memory"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// GoalExtractor turns a query plus working-memory context into a bounded
// list of goals via the provider.
type GoalExtractor struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// NewGoalExtractor creates a GoalExtractor.
func NewGoalExtractor(provider llm.Provider, cfg Config, logger *slog.Logger) *GoalExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalExtractor{
		provider: provider,
		config:   cfg.Normalize(),
		logger:   logger,
	}
}

// Extract proposes goals for the query. The snapshot is truncated to the
// fixed context policy before prompting; priorities and durations are
// clamped at the parse boundary and the result is capped at MaxGoals.
func (e *GoalExtractor) Extract(ctx context.Context, query string, snapshot *memory.Snapshot) ([]plan.Goal, error) {
	view := snapshot.SelectDefault()

	req := llm.NewCompletionRequest(e.config.Model,
		[]llm.Message{
			llm.NewSystemMessage(goalExtractionSystemPrompt(e.config.MaxGoals)),
			llm.NewUserMessage(goalExtractionUserPrompt(query, view)),
		},
		llm.WithTemperature(e.config.Temperature),
	)

	resp, err := e.provider.Complete(ctx, req)
	if err != nil {
		return nil, WrapPlanningError(ErrorTypeExtraction, "goal extraction completion failed", err)
	}

	env, err := llm.ExtractJSONAs[goalEnvelope](resp.Message.Content)
	if err != nil {
		return nil, NewParseError("goal_extraction", err)
	}

	goals := goalsFromProposals(env.Goals, e.config.MaxGoals, make(map[types.ID]bool))

	e.logger.Debug("extracted goals",
		"proposed", len(env.Goals),
		"kept", len(goals),
	)

	return goals, nil
}
