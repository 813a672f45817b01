package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/braincourse/internal/store"
)

type fakeEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return f.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	events := &fakeEvents{}
	mock := NewMockProvider(MockResponse{
		Content: []byte(validItems),
		Usage:   Usage{InputTokens: 12, OutputTokens: 34, TotalTokens: 46},
	})
	p := WithLogging(mock, ProviderMock, events)

	ctx := WithPurpose(context.Background(), PurposeQuiz)
	if _, err := p.Generate(ctx, UserRequest("sys prompt", "user prompt", itemsSchema(), 100, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.events))
	}
	e := events.events[0]
	if e.Purpose != "quiz" || e.Provider != "mock" || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 34 {
		t.Errorf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	for _, want := range []string{"[system]\nsys prompt", "[user]\nuser prompt", "[schema: test-quiz-items]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if e.ResponseBody != validItems {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	events := &fakeEvents{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, ProviderGemini, events)

	_, err := p.Generate(context.Background(), UserRequest("", "x", nil, 10, 0))
	if err == nil {
		t.Fatal("expected error")
	}
	e := events.events[0]
	if e.Success || !strings.Contains(e.ErrorMessage, "down") || e.Purpose != "unknown" {
		t.Errorf("event = %+v", e)
	}
	if e.Model != "mock" {
		t.Errorf("model = %q, want inner ModelID", e.Model)
	}
}

func TestLoggingProvider_SinkErrorDoesNotFailRequest(t *testing.T) {
	events := &fakeEvents{err: errors.New("disk full")}
	mock := NewMockProvider(MockText("hello"))
	p := WithLogging(mock, ProviderMock, events)

	resp, err := p.Generate(context.Background(), UserRequest("", "x", nil, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "hello" {
		t.Fatalf("text = %q", resp.Text())
	}
}

func TestLoggingProvider_RecordsEveryRetryAttempt(t *testing.T) {
	events := &fakeEvents{}
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockText("ok"),
	)
	p := WithRetry(WithLogging(mock, ProviderMock, events), retryConfig())

	if _, err := p.Generate(context.Background(), UserRequest("", "x", nil, 10, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events.events))
	}
	if events.events[0].Success || !events.events[1].Success {
		t.Errorf("success flags = %v, %v", events.events[0].Success, events.events[1].Success)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.0-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.0-flash")
	}
	got := c.Cost(1_000_000, 500_000)
	if got < 0.2999 || got > 0.3001 {
		t.Errorf("cost = %v, want 0.30", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("unknown model should have no pricing")
	}
}
