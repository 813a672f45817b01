package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func itemsSchema() *Schema {
	return &Schema{
		Name:        "test-quiz-items",
		Description: "Multiple-choice items",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question":       map[string]any{"type": "string"},
							"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"correct_answer": map[string]any{"type": "string"},
							"difficulty":     map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
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
}

const validItems = `{"items":[{"question":"1/2 + 1/4?","options":["3/4","2/6","1/8","1"],"correct_answer":"3/4"}]}`

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", validItems, false},
		{"valid with optional enum", `{"items":[{"question":"q","options":["a"],"correct_answer":"a","difficulty":"easy"}]}`, false},
		{"empty list", `{"items":[]}`, false},
		{"missing required", `{"items":[{"question":"q","options":["a"]}]}`, true},
		{"wrong type", `{"items":[{"question":"q","options":"a","correct_answer":"a"}]}`, true},
		{"bad enum", `{"items":[{"question":"q","options":["a"],"correct_answer":"a","difficulty":"extreme"}]}`, true},
		{"extra property", `{"items":[],"note":"hi"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
		{"fenced but broken", "```json\n{\"items\": [\n```", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateResponse(itemsSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
				if string(invErr.Content) != tt.raw {
					t.Errorf("error content = %q, want original %q", invErr.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidateResponse_ReturnsUnfencedJSON(t *testing.T) {
	raw := json.RawMessage("```json\n" + validItems + "\n```")
	got, err := validateResponse(itemsSchema(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != validItems {
		t.Fatalf("cleaned = %s, want %s", got, validItems)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"```json{\"a\":1}```", `{"a":1}`},
		{"```JSON\n[1,2]\n```  ", `[1,2]`},
	}
	for _, tt := range tests {
		if got := string(StripCodeFences([]byte(tt.in))); got != tt.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := itemsSchema()
	a, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile again: %v", err)
	}
	if a != b {
		t.Fatal("expected cached schema to be reused")
	}
}
