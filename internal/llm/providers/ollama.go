package providers

import (
	"context"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/NoelNavall/secure-code-review-automation/internal/config"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama2"
)

// OllamaProvider implements Provider for a local Ollama generation endpoint.
// No API key is required.
type OllamaProvider struct {
	client *ollama.LLM
	model  string
}

// NewOllamaProvider creates an Ollama provider against the configured server
// URL, defaulting to the standard local port.
func NewOllamaProvider(cfg *config.Config) (*OllamaProvider, error) {
	serverURL := cfg.BaseURL
	if serverURL == "" {
		serverURL = defaultOllamaURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}

	client, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, llm.TranslateError("ollama", err)
	}

	return &OllamaProvider{client: client, model: model}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Complete sends a completion request
func (p *OllamaProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	req = req.WithDefaults()

	resp, err := p.client.GenerateContent(ctx, toMessages(req), callOptions(req)...)
	if err != nil {
		return nil, llm.TranslateError("ollama", err)
	}

	return fromContentResponse(resp), nil
}
