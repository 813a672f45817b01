package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider returns a chat provider pointed at OpenRouter's
// OpenAI-compatible endpoint. Model ids are passed through unchanged.
func NewOpenRouterProvider(cfg BackendConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	return newChatProvider(cfg, nil, false), nil
}
