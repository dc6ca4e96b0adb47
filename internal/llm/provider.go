package llm

import "context"

// Provider defines the interface every LLM backend must implement. It
// provides a unified abstraction over hosted APIs (OpenAI, Anthropic) and
// local endpoints (Ollama, LM Studio), selected once at startup from
// configuration rather than by string comparison at call sites.
type Provider interface {
	// Name returns the provider name (e.g., "openai", "ollama")
	Name() string

	// Complete sends a completion request and returns the full response.
	// This is a blocking call bounded by the request context.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest is one triage completion call. Zero values for
// Temperature and MaxTokens mean "use the pipeline defaults".
type CompletionRequest struct {
	// System is the system instruction; providers without a native system
	// role fold it into the user content.
	System string

	// Prompt is the user content to complete.
	Prompt string

	Temperature float64
	MaxTokens   int
}

// Defaults used when a request leaves Temperature or MaxTokens unset.
const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 2000
)

// WithDefaults returns a copy of the request with unset options filled in.
func (r CompletionRequest) WithDefaults() CompletionRequest {
	if r.Temperature == 0 {
		r.Temperature = DefaultTemperature
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	return r
}

// CompletionResponse carries the raw text returned by a provider. The triage
// engine owns all interpretation of this text, including the best-effort JSON
// extraction.
type CompletionResponse struct {
	Content string
}
