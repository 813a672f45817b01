package content

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated item. The first failure
	// rejects the whole batch.
	Validators []Validator

	// MaxTokens is the token budget for structured replies.
	MaxTokens int

	// TextMaxTokens is the token budget for theory and explanations.
	TextMaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// MinModules and MaxModules bound the module count asked for in a
	// syllabus.
	MinModules, MaxModules int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{Want: 4},
			&AnswerMatchValidator{},
		},
		MaxTokens:     2048,
		TextMaxTokens: 1024,
		Temperature:   0.7,
		MinModules:    3,
		MaxModules:    5,
	}
}
