package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. SECSCAN_PROVIDER, SECSCAN_TOP_K.
const envPrefix = "SECSCAN"

// Load reads configuration from an optional YAML file, applies environment
// variable overrides, and fills unset values with defaults. An empty path
// means "no config file"; only defaults and environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := Default()
	v.SetDefault("provider", defaults.Provider)
	v.SetDefault("model", defaults.Model)
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("top_k", defaults.TopK)
	v.SetDefault("llm_timeout", defaults.LLMTimeout)
	v.SetDefault("critical_keywords", defaults.CriticalKeywords)
	v.SetDefault("high_keywords", defaults.HighKeywords)
	v.SetDefault("scanner_timeout", defaults.ScannerTimeout)
	v.SetDefault("reports_dir", defaults.ReportsDir)
	v.SetDefault("context_lines", defaults.ContextLines)
	v.SetDefault("items_per_page", defaults.ItemsPerPage)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	// The LLM_PROVIDER variable predates the SECSCAN_ prefix and is still
	// honored, as are the provider API key variables.
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" &&
		os.Getenv(envPrefix+"_PROVIDER") == "" && !v.InConfig("provider") {
		cfg.Provider = strings.ToLower(provider)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = apiKeyFromEnv(cfg.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// apiKeyFromEnv resolves the conventional API key variable for a provider.
// Local providers need no key, so an empty result is not an error here;
// missing keys surface as a descriptive error when the provider is built.
func apiKeyFromEnv(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case ProviderLMStudio:
		return os.Getenv("LM_STUDIO_API_KEY")
	default:
		return ""
	}
}
