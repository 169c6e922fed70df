package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects and configures a single LLM provider. An empty Provider
// disables AI features.
type Config struct {
	Provider string

	// Model is a friendly alias or a provider model ID. Empty picks the
	// provider default.
	Model string

	APIKey string

	// BaseURL overrides the API endpoint (OpenAI-compatible servers,
	// proxies, test servers).
	BaseURL string

	Retry RetryConfig

	// Timeout is the maximum duration for a single request including
	// retries. Default: 30s.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry returns the retry policy used when none is configured.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// DefaultModel returns the model alias used for provider when none is set.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "claude-haiku"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderOpenRouter:
		return "google/gemini-2.0-flash-001"
	case ProviderGemini:
		return "gemini-flash"
	case ProviderMock:
		return "mock"
	default:
		return ""
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// WithDefaults fills unset fields with provider defaults.
func (c Config) WithDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel(c.Provider)
	}
	if c.Provider == ProviderOpenRouter && c.BaseURL == "" {
		c.BaseURL = defaultOpenRouterBaseURL
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = DefaultRetry()
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// DiscoverAPIKey fills APIKey from the provider's conventional environment
// variable when it is not set explicitly.
func (c Config) DiscoverAPIKey() Config {
	if c.APIKey != "" {
		return c
	}
	var env string
	switch c.Provider {
	case ProviderAnthropic:
		env = "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		env = "OPENAI_API_KEY"
	case ProviderOpenRouter:
		env = "OPENROUTER_API_KEY"
	case ProviderGemini:
		env = "GEMINI_API_KEY"
	default:
		return c
	}
	c.APIKey = os.Getenv(env)
	return c
}

// Validate checks that the selected provider is known and has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider (set TUTOR_LLM_API_KEY)", c.Provider)
		}
	case ProviderMock, "":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
