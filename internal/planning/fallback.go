package planning

import (
	"context"
	"log/slog"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
)

// FallbackPlanner asks the provider for recovery strategies to annotate a
// plan with. Strategies are advisory: the executor never interprets them,
// they exist for operators and downstream agents reading the plan.
type FallbackPlanner struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// NewFallbackPlanner creates a FallbackPlanner.
func NewFallbackPlanner(provider llm.Provider, cfg Config, logger *slog.Logger) *FallbackPlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackPlanner{
		provider: provider,
		config:   cfg.Normalize(),
		logger:   logger,
	}
}

// ProposeStrategies returns recovery strategies covering the plan's goals
// and actions. Proposals missing a condition or an action are discarded at
// the parse boundary.
func (f *FallbackPlanner) ProposeStrategies(ctx context.Context, goals []plan.Goal, actions []plan.Action) ([]plan.FallbackStrategy, error) {
	req := llm.NewCompletionRequest(f.config.Model,
		[]llm.Message{
			llm.NewSystemMessage(fallbackSystemPrompt()),
			llm.NewUserMessage(fallbackUserPrompt(goals, actions)),
		},
		llm.WithTemperature(f.config.Temperature),
	)

	resp, err := f.provider.Complete(ctx, req)
	if err != nil {
		return nil, WrapPlanningError(ErrorTypeFallback, "fallback strategy completion failed", err)
	}

	env, err := llm.ExtractJSONAs[fallbackEnvelope](resp.Message.Content)
	if err != nil {
		return nil, NewParseError("fallback_strategies", err)
	}

	return strategiesFromProposals(env.Strategies), nil
}
