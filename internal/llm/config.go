package llm

import (
	"fmt"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// ProviderType identifies a supported Reasoner backend.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
	ProviderMock      ProviderType = "mock"
)

// IsValid checks if the provider type is a known value.
func (t ProviderType) IsValid() bool {
	switch t {
	case ProviderAnthropic, ProviderOpenAI, ProviderOllama, ProviderMock:
		return true
	default:
		return false
	}
}

// ProviderConfig configures a single Reasoner backend. APIKey may be left
// empty to fall back to the provider's conventional environment variable.
type ProviderConfig struct {
	Type         ProviderType   `mapstructure:"type" yaml:"type" validate:"required,oneof=anthropic openai ollama mock"`
	APIKey       string         `mapstructure:"api_key" yaml:"api_key"`
	BaseURL      string         `mapstructure:"base_url" yaml:"base_url"`
	DefaultModel string         `mapstructure:"default_model" yaml:"default_model"`
	Options      map[string]any `mapstructure:"options" yaml:"options"`

	// RequestsPerMinute, when positive, wraps the provider in a rate
	// limiter. Zero disables throttling.
	RequestsPerMinute int `mapstructure:"requests_per_minute" yaml:"requests_per_minute" validate:"gte=0"`
}

// Validate performs validation on the ProviderConfig.
func (p *ProviderConfig) Validate() error {
	if p.Type == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "provider type cannot be empty")
	}
	if !p.Type.IsValid() {
		return types.NewError(
			types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("unknown provider type: %s", p.Type),
		)
	}
	if p.RequestsPerMinute < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "requests_per_minute cannot be negative")
	}
	return nil
}
