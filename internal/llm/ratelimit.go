package llm

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// RateLimitedProvider decorates a Provider with a token-bucket limiter so
// planning bursts (extraction, decomposition, per-subgoal action proposals)
// stay inside a provider's request quota. Complete blocks until a token is
// available or the context is done.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewRateLimitedProvider wraps p with a limiter allowing requestsPerMinute
// sustained requests. Burst defaults to requestsPerMinute when burst <= 0.
func NewRateLimitedProvider(p Provider, requestsPerMinute int, burst int) *RateLimitedProvider {
	if burst <= 0 {
		burst = requestsPerMinute
	}

	perSecond := float64(requestsPerMinute) / 60.0

	return &RateLimitedProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Name returns the wrapped provider's name.
func (p *RateLimitedProvider) Name() string {
	return p.inner.Name()
}

// Models returns the wrapped provider's models.
func (p *RateLimitedProvider) Models(ctx context.Context) ([]ModelInfo, error) {
	return p.inner.Models(ctx)
}

// Complete waits for the limiter, then delegates.
func (p *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, TranslateError(p.inner.Name(), err)
	}
	return p.inner.Complete(ctx, req)
}

// Health delegates without consuming a token.
func (p *RateLimitedProvider) Health(ctx context.Context) types.HealthStatus {
	return p.inner.Health(ctx)
}

var _ Provider = (*RateLimitedProvider)(nil)
