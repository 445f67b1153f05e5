package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

type countingProvider struct {
	completions int
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Models(ctx context.Context) ([]ModelInfo, error) {
	return nil, nil
}

func (p *countingProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	p.completions++
	return &CompletionResponse{
		Message: NewAssistantMessage("ok"),
	}, nil
}

func (p *countingProvider) Health(ctx context.Context) types.HealthStatus {
	return types.NewHealthStatus(types.HealthStateHealthy, "")
}

func TestRateLimitedProvider_Delegates(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 600, 10)

	resp, err := p.Complete(context.Background(), CompletionRequest{
		Model:    "m",
		Messages: []Message{NewUserMessage("hi")},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Message.Content)
	assert.Equal(t, 1, inner.completions)
	assert.Equal(t, "counting", p.Name())
}

func TestRateLimitedProvider_ContextCancelled(t *testing.T) {
	inner := &countingProvider{}
	// One request per minute with a burst of one: the second call must wait.
	p := NewRateLimitedProvider(inner, 1, 1)

	_, err := p.Complete(context.Background(), CompletionRequest{
		Model:    "m",
		Messages: []Message{NewUserMessage("first")},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = p.Complete(ctx, CompletionRequest{
		Model:    "m",
		Messages: []Message{NewUserMessage("second")},
	})
	require.Error(t, err)
	assert.Equal(t, 1, inner.completions)
}
