package config

import (
	"fmt"
	"time"

	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

// Provider names accepted by the triage engine.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderLMStudio  = "lmstudio"
	ProviderMock      = "mock"
)

// TopKAll disables the triage bound: every finding is sent to the LLM.
const TopKAll = -1

// Config holds all knobs for a scan run. Earlier revisions of this tool kept
// several of these as module-level globals with divergent defaults; they are
// now explicit, named configuration.
type Config struct {
	// LLM provider selection and credentials
	Provider string `mapstructure:"provider" yaml:"provider"`
	Model    string `mapstructure:"model" yaml:"model"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`

	// Triage
	TopK       int           `mapstructure:"top_k" yaml:"top_k"`
	LLMTimeout time.Duration `mapstructure:"llm_timeout" yaml:"llm_timeout"`
	SkipLLM    bool          `mapstructure:"skip_llm" yaml:"skip_llm"`

	// Severity classification keywords (matched case-insensitively against
	// finding messages; these are configuration, not tool output)
	CriticalKeywords []string `mapstructure:"critical_keywords" yaml:"critical_keywords"`
	HighKeywords     []string `mapstructure:"high_keywords" yaml:"high_keywords"`

	// Scanners
	ScannerTimeout time.Duration `mapstructure:"scanner_timeout" yaml:"scanner_timeout"`

	// Reports
	ReportsDir   string `mapstructure:"reports_dir" yaml:"reports_dir"`
	ContextLines int    `mapstructure:"context_lines" yaml:"context_lines"`
	ItemsPerPage int    `mapstructure:"items_per_page" yaml:"items_per_page"`
}

// Default returns a Config with the default values for every option.
func Default() *Config {
	return &Config{
		Provider:   ProviderOpenAI,
		TopK:       10,
		LLMTimeout: 120 * time.Second,
		CriticalKeywords: []string{
			"sql injection", "command injection", "code injection",
			"xxe", "deserialization", "path traversal", "rce",
		},
		HighKeywords: []string{
			"xss", "csrf", "authentication", "authorization",
			"hardcoded", "secret", "password", "crypto",
		},
		ScannerTimeout: 300 * time.Second,
		ReportsDir:     "reports",
		ContextLines:   4,
		ItemsPerPage:   20,
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderOllama, ProviderLMStudio, ProviderMock:
	default:
		return types.NewError(
			types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("unknown provider %q, must be one of: openai, anthropic, ollama, lmstudio", c.Provider),
		)
	}

	if c.TopK < TopKAll || c.TopK == 0 {
		return types.NewError(
			types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("top_k must be positive or -1 for all findings, got %d", c.TopK),
		)
	}

	if c.ScannerTimeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "scanner_timeout must be positive")
	}

	if c.LLMTimeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "llm_timeout must be positive")
	}

	if c.ContextLines < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "context_lines cannot be negative")
	}

	if c.ItemsPerPage <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "items_per_page must be positive")
	}

	return nil
}
