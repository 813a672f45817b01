package content

import "github.com/abhisek/braincourse/internal/llm"

// ItemsSchema is the reply shape for quiz, exam and placement requests.
var ItemsSchema = &llm.Schema{
	Name:        "quiz-items",
	Description: "A list of multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options, one of them correct",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The exact text of the correct option",
						},
					},
					"required":             []any{"question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"items"},
		"additionalProperties": false,
	},
}

// SyllabusSchema is the reply shape for syllabus requests.
var SyllabusSchema = &llm.Schema{
	Name:        "course-syllabus",
	Description: "A course outline split into modules",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"modules": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Module title",
						},
						"subtopics": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Subtopics covered by the module, in teaching order",
						},
					},
					"required":             []any{"title", "subtopics"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"modules"},
		"additionalProperties": false,
	},
}
