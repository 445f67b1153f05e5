package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// NewAuthError indicates a provider rejected or was missing credentials.
func NewAuthError(provider string, cause error) *types.CoreError {
	return types.WrapError(
		types.PROVIDER_INIT_FAILED,
		fmt.Sprintf("provider %s: missing or invalid credentials", provider),
		cause,
	)
}

// NewProviderNotFoundError indicates an unknown provider type was requested.
func NewProviderNotFoundError(name string) *types.CoreError {
	return types.NewError(
		types.PROVIDER_NOT_FOUND,
		fmt.Sprintf("unknown provider type: %s", name),
	)
}

// NewCompletionError wraps a failed completion call.
func NewCompletionError(provider string, cause error) *types.CoreError {
	return types.WrapError(
		types.COMPLETION_FAILED,
		fmt.Sprintf("provider %s: completion request failed", provider),
		cause,
	)
}

// NewParseError indicates a response could not be parsed as the expected
// structure. The offending content is carried in the message, truncated.
func NewParseError(provider string, content string, cause error) *types.CoreError {
	const maxSample = 120
	sample := content
	if len(sample) > maxSample {
		sample = sample[:maxSample] + "..."
	}
	return types.WrapError(
		types.RESPONSE_PARSE_FAILED,
		fmt.Sprintf("provider %s: unparseable response: %q", provider, sample),
		cause,
	)
}

// TranslateError classifies a raw provider error into a CoreError, marking
// transient conditions (timeouts, rate limits, connectivity) retryable.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return types.WrapError(types.COMPLETION_FAILED,
			fmt.Sprintf("provider %s: request cancelled or timed out", provider), err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "429"),
		strings.Contains(msg, "timeout"), strings.Contains(msg, "connection"):
		coreErr := types.NewRetryableError(types.COMPLETION_FAILED,
			fmt.Sprintf("provider %s: transient failure", provider))
		coreErr.Cause = err
		return coreErr
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "401"),
		strings.Contains(msg, "api key"):
		return NewAuthError(provider, err)
	default:
		return NewCompletionError(provider, err)
	}
}
