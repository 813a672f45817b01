package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/braincourse/internal/store"
)

// LoggingProvider records every request as an llm_request event.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithLogging wraps p so each Generate call is appended to events.
func WithLogging(p Provider, providerName string, events store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: providerName, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     string(PurposeFrom(ctx)),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A failed audit write never fails the request.
	if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		slog.Warn("record llm request event", "err", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func renderRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
