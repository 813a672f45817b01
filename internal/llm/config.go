package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one backend.
type Config struct {
	Provider string

	Gemini     BackendConfig
	Anthropic  BackendConfig
	OpenAI     BackendConfig
	OpenRouter BackendConfig

	Retry RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// BackendConfig is the per-backend credentials and model choice.
// BaseURL only applies to OpenAI-compatible backends.
type BackendConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls RetryProvider.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini Flash.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     BackendConfig{Model: "gemini-flash"},
		Anthropic:  BackendConfig{Model: "claude-haiku"},
		OpenAI:     BackendConfig{Model: "gpt-4o-mini"},
		OpenRouter: BackendConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// envPrefix namespaces every variable read by ApplyEnv.
const envPrefix = "BRAINCOURSE_"

// ApplyEnv overlays BRAINCOURSE_* variables onto cfg.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Provider, "LLM_PROVIDER")

	backends := map[string]*BackendConfig{
		"GEMINI":     &c.Gemini,
		"ANTHROPIC":  &c.Anthropic,
		"OPENAI":     &c.OpenAI,
		"OPENROUTER": &c.OpenRouter,
	}
	for name, b := range backends {
		setFromEnv(&b.APIKey, name+"_API_KEY")
		setFromEnv(&b.Model, name+"_MODEL")
		setFromEnv(&b.BaseURL, name+"_BASE_URL")
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

// Discover fills in a provider from the vendor's standard API key
// variables when the configured provider has no key. Lookup order is
// Gemini, OpenAI, Anthropic, OpenRouter. It reports whether a usable key
// was found.
func (c *Config) Discover() bool {
	if c.Provider == ProviderMock || c.backend(c.Provider).APIKey != "" {
		return true
	}

	candidates := []struct {
		provider string
		env      string
	}{
		{ProviderGemini, "GEMINI_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
	}
	for _, p := range candidates {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			c.backend(p.provider).APIKey = k
			return true
		}
	}
	return false
}

// backend returns the BackendConfig for name. Unknown names get a scratch
// value so callers never dereference nil.
func (c *Config) backend(name string) *BackendConfig {
	switch name {
	case ProviderGemini:
		return &c.Gemini
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderOpenRouter:
		return &c.OpenRouter
	default:
		return &BackendConfig{}
	}
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderGemini, ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter:
		if c.backend(c.Provider).APIKey == "" {
			return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
				envPrefix, strings.ToUpper(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

