package llm

import (
	"errors"
	"fmt"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	Gemini     = "gemini"
	OpenAI     = "openai"
	Anthropic  = "anthropic"
	OpenRouter = "openrouter"
	Mock       = "mock"
)

// Remote lists the providers that talk to an API, in the order Discover
// probes them.
var Remote = []string{Gemini, OpenAI, Anthropic, OpenRouter}

// keyEnv is the variable named in errors about a missing key.
var keyEnv = map[string]string{
	Gemini:     "GEMINI_API_KEY",
	OpenAI:     "OPENAI_API_KEY",
	Anthropic:  "ANTHROPIC_API_KEY",
	OpenRouter: "OPENROUTER_API_KEY",
}

// Endpoint is the account and model used with one provider.
type Endpoint struct {
	APIKey string
	// Model is a provider model ID or one of the short aliases
	// ("gemini-flash", "claude-haiku").
	Model string
	// BaseURL replaces the provider's API root, for proxies and tests.
	BaseURL string
}

// Config selects and tunes the provider.
type Config struct {
	// Provider is one of the names above. Empty picks the first remote
	// provider with an API key.
	Provider  string
	Endpoints map[string]Endpoint

	Retry RetryConfig

	// RequestsPerMinute caps outgoing calls. Zero disables the limit.
	RequestsPerMinute int

	// Timeout bounds one Generate call, retries included. Zero disables it.
	Timeout time.Duration
}

// RetryConfig is the backoff schedule of RetryProvider.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig tries each call once and gives up after 30 seconds.
func DefaultConfig() Config {
	return Config{
		Endpoints: map[string]Endpoint{
			Gemini:     {Model: "gemini-flash"},
			OpenAI:     {Model: "gpt-4o-mini"},
			Anthropic:  {Model: "claude-haiku"},
			OpenRouter: {Model: "google/gemini-2.5-flash"},
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// Discover sets an empty Provider to the first remote provider with an API
// key and reports whether a provider is selected.
func (c *Config) Discover() bool {
	if c.Provider != "" {
		return true
	}
	for _, name := range Remote {
		if c.Endpoints[name].APIKey != "" {
			c.Provider = name
			return true
		}
	}
	return false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return errors.New("no LLM provider configured: set GEMINI_API_KEY or FOCOLEVE_LLM_PROVIDER")
	case Mock:
		return nil
	}
	env, known := keyEnv[c.Provider]
	if !known {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.Endpoints[c.Provider].APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
