package providers

import (
	"context"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/NoelNavall/secure-code-review-automation/internal/config"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

// defaultOpenAIModel is cheaper and faster than the full GPT-4 models while
// remaining good enough for triage commentary.
const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider implements Provider for OpenAI's hosted chat-completion API.
type OpenAIProvider struct {
	client *openai.LLM
	model  string
}

// NewOpenAIProvider creates an OpenAI provider. A missing API key is a
// descriptive typed error, not a panic; the caller surfaces it per finding.
func NewOpenAIProvider(cfg *config.Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewAuthError("openai")
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, llm.TranslateError("openai", err)
	}

	return &OpenAIProvider{client: client, model: model}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete sends a completion request
func (p *OpenAIProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	req = req.WithDefaults()

	resp, err := p.client.GenerateContent(ctx, toMessages(req), callOptions(req)...)
	if err != nil {
		return nil, llm.TranslateError("openai", err)
	}

	return fromContentResponse(resp), nil
}
