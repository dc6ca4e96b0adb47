package providers

import (
	"github.com/NoelNavall/secure-code-review-automation/internal/config"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

// NewProvider creates the LLM provider named by the configuration. Provider
// selection happens exactly once, here; call sites only ever see the Provider
// interface. An unknown name is a descriptive typed error.
func NewProvider(cfg *config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg)

	case config.ProviderAnthropic:
		return NewAnthropicProvider(cfg)

	case config.ProviderOllama:
		return NewOllamaProvider(cfg)

	case config.ProviderLMStudio:
		return NewLMStudioProvider(cfg)

	case config.ProviderMock:
		return NewMockProvider([]string{`{"exploitability": 1, "impact": "mock", "false_positive": "LOW", "remediation": "mock", "priority": "LOW"}`}), nil

	default:
		return nil, llm.NewUnknownProviderError(cfg.Provider)
	}
}
