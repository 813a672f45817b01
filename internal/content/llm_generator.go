package content

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/braincourse/internal/course"
	"github.com/abhisek/braincourse/internal/llm"
)

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

var _ Generator = (*LLMGenerator)(nil)

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type itemsOutput struct {
	Items []Item `json:"items"`
}

// Items generates req.Count questions. Extra items are dropped; fewer are
// accepted as long as at least one survives validation.
func (g *LLMGenerator) Items(ctx context.Context, req Request) ([]Item, error) {
	switch req.Kind {
	case KindQuiz, KindExam, KindPlacement:
	default:
		return nil, genErr(req.Kind, "not an item request", nil)
	}
	if req.Count <= 0 {
		return nil, genErr(req.Kind, "requested zero items", nil)
	}

	ctx = llm.WithPurpose(ctx, itemsPurpose(req.Kind))
	resp, err := g.provider.Generate(ctx, llm.UserRequest(
		systemPrompt, buildItemsMessage(req), ItemsSchema, g.config.MaxTokens, g.config.Temperature))
	if err != nil {
		return nil, genErr(req.Kind, "model request failed", err)
	}

	var raw itemsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, genErr(req.Kind, "failed to parse model response", err)
	}
	if len(raw.Items) == 0 {
		return nil, genErr(req.Kind, "model returned no items", nil)
	}
	if len(raw.Items) > req.Count {
		raw.Items = raw.Items[:req.Count]
	}

	for i := range raw.Items {
		for _, v := range g.config.Validators {
			if verr := v.Validate(&raw.Items[i], req); verr != nil {
				verr.Index = i
				return nil, genErr(req.Kind, "invalid item", verr)
			}
		}
	}
	return raw.Items, nil
}

// Syllabus generates a course outline. Modules without a title and
// subtopics are dropped.
func (g *LLMGenerator) Syllabus(ctx context.Context, req Request) (*Syllabus, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, genErr(KindSyllabus, "topic is empty", nil)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeSyllabus)
	resp, err := g.provider.Generate(ctx, llm.UserRequest(
		systemPrompt, buildSyllabusMessage(req, g.config), SyllabusSchema, g.config.MaxTokens, g.config.Temperature))
	if err != nil {
		return nil, genErr(KindSyllabus, "model request failed", err)
	}

	var out Syllabus
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, genErr(KindSyllabus, "failed to parse model response", err)
	}
	out.Modules = lo.Reject(out.Modules, func(o course.Outline, _ int) bool {
		return strings.TrimSpace(o.Title) == "" && len(o.Subtopics) == 0
	})
	if len(out.Modules) == 0 {
		return nil, genErr(KindSyllabus, "model returned no modules", nil)
	}
	return &out, nil
}

// Theory generates free-text theory for req.Topic.
func (g *LLMGenerator) Theory(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return "", genErr(KindTheory, "topic is empty", nil)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeTheory)
	return g.text(ctx, KindTheory, buildTheoryMessage(req))
}

// Explain generates a hint, solution or justification for one question.
func (g *LLMGenerator) Explain(ctx context.Context, req ExplainRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", genErr(KindExplain, "question is empty", nil)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)
	return g.text(ctx, KindExplain, buildExplainMessage(req))
}

func (g *LLMGenerator) text(ctx context.Context, kind Kind, msg string) (string, error) {
	resp, err := g.provider.Generate(ctx, llm.UserRequest(
		systemPrompt, msg, nil, g.config.TextMaxTokens, g.config.Temperature))
	if err != nil {
		return "", genErr(kind, "model request failed", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", genErr(kind, "model returned empty text", nil)
	}
	return text, nil
}

func itemsPurpose(k Kind) llm.Purpose {
	switch k {
	case KindExam:
		return llm.PurposeExam
	case KindPlacement:
		return llm.PurposePlacement
	default:
		return llm.PurposeQuiz
	}
}
