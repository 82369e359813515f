package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider keys accepted in EXAMPREP_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// OpenRouter speaks the OpenAI wire protocol at this address.
const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects a provider and its credentials.
type Config struct {
	Provider string

	Anthropic  Credentials
	OpenAI     Credentials
	Gemini     Credentials
	OpenRouter Credentials

	Retry RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// Credentials for one provider. BaseURL only applies to OpenAI-compatible
// providers.
type Credentials struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses small, cheap models; explanations are short.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  Credentials{Model: "claude-haiku"},
		OpenAI:     Credentials{Model: "gpt-4o-mini"},
		Gemini:     Credentials{Model: "gemini-flash"},
		OpenRouter: Credentials{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// envProvider ties a provider key to its credentials and the vendor's own
// API key variable, which is used when the EXAMPREP_ one is unset.
type envProvider struct {
	key       string
	vendorKey string
	creds     func(*Config) *Credentials
}

// Discovery order when no provider is named.
var envProviders = []envProvider{
	{ProviderGemini, "GEMINI_API_KEY", func(c *Config) *Credentials { return &c.Gemini }},
	{ProviderOpenAI, "OPENAI_API_KEY", func(c *Config) *Credentials { return &c.OpenAI }},
	{ProviderAnthropic, "ANTHROPIC_API_KEY", func(c *Config) *Credentials { return &c.Anthropic }},
	{ProviderOpenRouter, "OPENROUTER_API_KEY", func(c *Config) *Credentials { return &c.OpenRouter }},
}

func envPrefix(provider string) string {
	return "EXAMPREP_" + strings.ToUpper(provider) + "_"
}

// ConfigFromEnv overlays EXAMPREP_LLM_PROVIDER and the per-provider
// EXAMPREP_<PROVIDER>_API_KEY, _MODEL and _BASE_URL variables on the
// defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("EXAMPREP_LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
	}
	for _, ep := range envProviders {
		c := ep.creds(&cfg)
		prefix := envPrefix(ep.key)
		c.APIKey = firstEnv(prefix+"API_KEY", ep.vendorKey)
		if m := os.Getenv(prefix + "MODEL"); m != "" {
			c.Model = m
		}
		if u := os.Getenv(prefix + "BASE_URL"); u != "" {
			c.BaseURL = u
		}
	}
	return cfg
}

// DiscoverConfig returns ConfigFromEnv when a provider is named explicitly.
// Otherwise it picks the first provider with an API key in the environment.
// The boolean is false when no provider can be used.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	if os.Getenv("EXAMPREP_LLM_PROVIDER") != "" {
		return cfg, true
	}
	for _, ep := range envProviders {
		if ep.creds(&cfg).APIKey != "" {
			cfg.Provider = ep.key
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks the selected provider has an API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	for _, ep := range envProviders {
		if ep.key != c.Provider {
			continue
		}
		if ep.creds(&c).APIKey == "" {
			return fmt.Errorf("%sAPI_KEY or %s is required for the %s provider", envPrefix(ep.key), ep.vendorKey, ep.key)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
