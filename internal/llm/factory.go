package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/braincourse/internal/store"
)

// NewProvider builds the configured backend wrapped as
// caller → retry → logging → backend, so every attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	var p Provider = base
	if events != nil {
		p = WithLogging(p, cfg.Provider, events)
	}
	return WithRetry(p, cfg.Retry), nil
}
