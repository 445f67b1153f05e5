package providers

import (
	"github.com/wsyeabsera/clear-ai-sub000/internal/llm"
)

// NewProvider creates a Reasoner backend from its configuration. When the
// config asks for rate limiting the provider is wrapped accordingly.
func NewProvider(cfg llm.ProviderConfig) (llm.Provider, error) {
	var (
		p   llm.Provider
		err error
	)

	switch cfg.Type {
	case llm.ProviderAnthropic:
		p, err = NewAnthropicProvider(cfg)

	case llm.ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg)

	case llm.ProviderOllama:
		p, err = NewOllamaProvider(cfg)

	case llm.ProviderMock:
		p = NewMockProvider([]string{`{"goals": []}`})

	default:
		return nil, llm.NewProviderNotFoundError(string(cfg.Type))
	}

	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerMinute > 0 {
		p = llm.NewRateLimitedProvider(p, cfg.RequestsPerMinute, 0)
	}

	return p, nil
}
