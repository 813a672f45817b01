package llm

import (
	"context"
	"encoding/json"
)

// Provider is the narrow interface every model backend satisfies.
type Provider interface {
	// Generate sends one request and returns the model output. When
	// req.Schema is set the output has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the resolved model identifier.
	ModelID() string
}

// Request is a single-shot prompt. Conversation state is never carried
// between calls; callers rebuild the full context every time.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for JSON conforming to it.
	// When nil the response is free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the prompt.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case and doubles as the OpenAI schema name and the
	// validator cache key, e.g. "quiz-items".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider output.
type Response struct {
	// Content is validated JSON when the request carried a Schema, or the
	// raw text otherwise.
	Content json.RawMessage

	Usage Usage
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns Content as a string.
func (r *Response) Text() string {
	return string(r.Content)
}

// Usage reports token counts for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserRequest builds the common one-message request shape.
func UserRequest(system, user string, schema *Schema, maxTokens int, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}
