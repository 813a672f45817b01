package content

import "fmt"

// GenerationError means the generator produced nothing usable. Err carries
// the underlying llm error when there is one.
type GenerationError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generate %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("generate %s: %s: %v", e.Kind, e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func genErr(kind Kind, reason string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Reason: reason, Err: err}
}
