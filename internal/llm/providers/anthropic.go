package providers

import (
	"context"

	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/NoelNavall/secure-code-review-automation/internal/config"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicProvider implements Provider for Anthropic's hosted messages API.
type AnthropicProvider struct {
	client *anthropic.LLM
	model  string
}

// NewAnthropicProvider creates an Anthropic provider. A missing API key is a
// descriptive typed error, not a panic.
func NewAnthropicProvider(cfg *config.Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewAuthError("anthropic")
	}

	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	opts := []anthropic.Option{
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	client, err := anthropic.New(opts...)
	if err != nil {
		return nil, llm.TranslateError("anthropic", err)
	}

	return &AnthropicProvider{client: client, model: model}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Complete sends a completion request. The system instruction is folded into
// the user content; the messages API treats top-level system prompts
// differently per model and the folded form works across all of them.
func (p *AnthropicProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	req = req.WithDefaults()
	if req.System != "" {
		req.Prompt = req.System + "\n\n" + req.Prompt
		req.System = ""
	}

	resp, err := p.client.GenerateContent(ctx, toMessages(req), callOptions(req)...)
	if err != nil {
		return nil, llm.TranslateError("anthropic", err)
	}

	return fromContentResponse(resp), nil
}
