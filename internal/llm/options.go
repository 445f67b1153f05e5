package llm

// CompletionOption is a functional option for configuring completion requests.
type CompletionOption func(*CompletionRequest)

// WithTemperature sets the sampling temperature (0.0 - 1.0).
func WithTemperature(temperature float64) CompletionOption {
	return func(req *CompletionRequest) {
		req.Temperature = temperature
	}
}

// WithMaxTokens limits the length of the generated response.
func WithMaxTokens(maxTokens int) CompletionOption {
	return func(req *CompletionRequest) {
		req.MaxTokens = maxTokens
	}
}

// WithTopP sets the nucleus sampling parameter (0.0 - 1.0).
func WithTopP(topP float64) CompletionOption {
	return func(req *CompletionRequest) {
		req.TopP = topP
	}
}

// WithStopSequences sets sequences that stop generation when encountered.
func WithStopSequences(sequences ...string) CompletionOption {
	return func(req *CompletionRequest) {
		req.StopSequences = sequences
	}
}

// WithSystemPrompt sets a system prompt for the completion request.
// Some providers handle this differently than a system message in the
// conversation, so it is carried separately.
func WithSystemPrompt(prompt string) CompletionOption {
	return func(req *CompletionRequest) {
		req.SystemPrompt = prompt
	}
}

// WithMetadataOption adds metadata to the completion request.
func WithMetadataOption(key string, value any) CompletionOption {
	return func(req *CompletionRequest) {
		if req.Metadata == nil {
			req.Metadata = make(map[string]any)
		}
		req.Metadata[key] = value
	}
}

// ApplyOptions applies a list of options to a completion request.
func ApplyOptions(req *CompletionRequest, opts ...CompletionOption) {
	for _, opt := range opts {
		opt(req)
	}
}

// NewCompletionRequest creates a completion request with the given model and
// messages, then applies any options.
//
// Example:
//
//	req := NewCompletionRequest("claude-3-haiku-20240307",
//	    []Message{NewUserMessage("Summarize the results")},
//	    WithTemperature(0.3),
//	    WithMaxTokens(1000),
//	)
func NewCompletionRequest(model string, messages []Message, opts ...CompletionOption) CompletionRequest {
	req := CompletionRequest{
		Model:    model,
		Messages: messages,
	}

	ApplyOptions(&req, opts...)
	return req
}
