package content

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Validator checks a generated item. Implementations may canonicalize the
// item in place and must be safe for concurrent use.
type Validator interface {
	// Name is a short identifier used in error messages.
	Name() string

	Validate(it *Item, req Request) *ItemError
}

// ItemError describes why an item failed validation.
type ItemError struct {
	Validator string
	Index     int
	Message   string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: validator %q: %s", e.Index, e.Validator, e.Message)
}

// StructuralValidator checks that the question text is present.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(it *Item, _ Request) *ItemError {
	it.Question = strings.TrimSpace(it.Question)
	if it.Question == "" {
		return &ItemError{Validator: v.Name(), Message: "question is empty"}
	}
	if strings.TrimSpace(it.Correct) == "" {
		return &ItemError{Validator: v.Name(), Message: "correct_answer is empty"}
	}
	return nil
}

// OptionsValidator checks the option list: Want entries (at least two when
// Want is zero), none blank, no duplicates.
type OptionsValidator struct {
	Want int
}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(it *Item, _ Request) *ItemError {
	it.Options = lo.Map(it.Options, func(o string, _ int) string { return strings.TrimSpace(o) })

	switch {
	case v.Want > 0 && len(it.Options) != v.Want:
		return &ItemError{Validator: v.Name(), Message: fmt.Sprintf("got %d options, want %d", len(it.Options), v.Want)}
	case len(it.Options) < 2:
		return &ItemError{Validator: v.Name(), Message: "fewer than 2 options"}
	case lo.Contains(it.Options, ""):
		return &ItemError{Validator: v.Name(), Message: "blank option"}
	case len(lo.Uniq(it.Options)) != len(it.Options):
		return &ItemError{Validator: v.Name(), Message: "duplicate options"}
	}
	return nil
}

// AnswerMatchValidator requires the correct answer to be one of the options.
// A case or whitespace mismatch is repaired by adopting the option's text.
type AnswerMatchValidator struct{}

func (v *AnswerMatchValidator) Name() string { return "answer-match" }

func (v *AnswerMatchValidator) Validate(it *Item, _ Request) *ItemError {
	if it.HasOption(it.Correct) {
		return nil
	}
	want := fold(it.Correct)
	matches := lo.Filter(it.Options, func(o string, _ int) bool { return fold(o) == want })
	if len(matches) != 1 {
		return &ItemError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correct answer %q is not among the options", it.Correct),
		}
	}
	it.Correct = matches[0]
	return nil
}

func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
