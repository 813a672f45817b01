// Package content turns tutoring requests into model prompts and parses the
// replies into quiz items, syllabi and explanatory text.
package content

import (
	"context"

	"github.com/samber/lo"

	"github.com/abhisek/braincourse/internal/course"
	"github.com/abhisek/braincourse/internal/profile"
)

// Kind is what a Request asks the model to produce.
type Kind string

const (
	KindSyllabus  Kind = "syllabus"
	KindTheory    Kind = "theory"
	KindQuiz      Kind = "quiz"
	KindExam      Kind = "exam"
	KindPlacement Kind = "placement"
	KindExplain   Kind = "explain"
)

// Request is the input to every generation call. Prompt context is rebuilt
// from these fields on each call.
type Request struct {
	Kind Kind

	// Topic is the quiz topic, course topic or theory subtopic.
	Topic string

	// Subtopics is the exam coverage list. Topic is ignored for exams when
	// Subtopics is non-empty.
	Subtopics []string

	Level int
	Count int

	// Profile is nil for teachers and anonymous requests.
	Profile *profile.PromptContext
}

// Item is one multiple-choice question.
type Item struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct_answer"`
}

// HasOption reports whether s is exactly one of the options.
func (it Item) HasOption(s string) bool {
	return lo.Contains(it.Options, s)
}

// Syllabus is a generated course outline.
type Syllabus struct {
	Modules []course.Outline `json:"modules"`
}

// ExplainMode selects the kind of explanation.
type ExplainMode string

const (
	ExplainHint     ExplainMode = "hint"
	ExplainSolution ExplainMode = "solution"
	ExplainWhy      ExplainMode = "why"
)

// ExplainRequest asks for help on a single question.
type ExplainRequest struct {
	Mode       ExplainMode
	Question   string
	Options    []string
	Correct    string
	UserAnswer string
	Level      int
	Profile    *profile.PromptContext
}

// Generator produces tutoring content. Every failure is a *GenerationError.
type Generator interface {
	// Items returns quiz, exam or placement questions. Each returned item
	// has exactly one option equal to Correct.
	Items(ctx context.Context, req Request) ([]Item, error)

	// Syllabus returns a course outline for req.Topic.
	Syllabus(ctx context.Context, req Request) (*Syllabus, error)

	// Theory returns an explanation of req.Topic.
	Theory(ctx context.Context, req Request) (string, error)

	// Explain returns a hint, a worked solution or a justification.
	Explain(ctx context.Context, req ExplainRequest) (string, error)
}
