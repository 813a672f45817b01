package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(
		BackendConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: server.URL},
		option.WithMaxRetries(0),
	)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":   "msg_test",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"usage": map[string]any{
			"input_tokens":  50,
			"output_tokens": 30,
		},
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(validItems, "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), UserRequest("You are Brainy.", "Make one item.", itemsSchema(), 256, 0.7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != validItems {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if body["model"] != "claude-haiku-4-5" {
		t.Errorf("request model = %v", body["model"])
	}
	if _, ok := body["system"]; !ok {
		t.Error("system prompt not sent")
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"items":[`, "max_tokens"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), UserRequest("", "x", itemsSchema(), 10, 0))
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    "rate_limit_error",
				"message": "Rate limit exceeded",
			},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), UserRequest("", "test", nil, 100, 0))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestAnthropicProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    "api_error",
				"message": "Internal server error",
			},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), UserRequest("", "test", nil, 100, 0))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-5"},
		{"claude-haiku", "claude-haiku-4-5"},
		{"claude-sonnet-4-5-20250929", "claude-sonnet-4-5-20250929"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, anthropicModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
