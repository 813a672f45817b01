package llm

import "context"

// Purpose labels why a request was made. It is recorded with every
// request event.
type Purpose string

const (
	PurposeQuiz      Purpose = "quiz"
	PurposeExam      Purpose = "exam"
	PurposePlacement Purpose = "placement"
	PurposeSyllabus  Purpose = "syllabus"
	PurposeTheory    Purpose = "theory"
	PurposeExplain   Purpose = "explain"
	PurposeUnknown   Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose attaches a purpose label to ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the label attached by WithPurpose.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok {
		return p
	}
	return PurposeUnknown
}
