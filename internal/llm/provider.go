package llm

import (
	"context"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// Provider is the Reasoner boundary: the language-model completion capability
// the planner uses to propose goals, subgoals, actions, risks, fallbacks and
// narrative summaries. The core never depends on a concrete implementation,
// and it treats every response as untrusted text.
type Provider interface {
	// Name returns the provider name (e.g., "anthropic", "openai", "mock")
	Name() string

	// Models returns information about the models this provider serves
	Models(ctx context.Context) ([]ModelInfo, error)

	// Complete sends a completion request and blocks for the full response
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks provider connectivity
	Health(ctx context.Context) types.HealthStatus
}

// ModelInfo contains metadata about a model.
type ModelInfo struct {
	// Name is the model identifier (e.g., "claude-3-haiku-20240307", "gpt-4o")
	Name string `json:"name"`

	// ContextWindow is the maximum number of tokens the model can process
	ContextWindow int `json:"context_window"`

	// Features lists the capabilities this model supports
	Features []string `json:"features"`

	// MaxOutput is the maximum number of tokens the model can generate
	MaxOutput int `json:"max_output"`
}

// SupportsFeature checks if the model supports a given feature
func (m ModelInfo) SupportsFeature(feature string) bool {
	for _, f := range m.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// SupportsJSONMode checks if the model supports structured JSON output
func (m ModelInfo) SupportsJSONMode() bool {
	return m.SupportsFeature("json_mode")
}
