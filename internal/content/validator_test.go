package content

import "testing"

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		v       Validator
		item    Item
		wantErr bool
	}{
		{"structural ok", &StructuralValidator{}, Item{Question: "q", Correct: "a"}, false},
		{"structural blank question", &StructuralValidator{}, Item{Question: "  ", Correct: "a"}, true},
		{"structural blank answer", &StructuralValidator{}, Item{Question: "q"}, true},
		{"options ok", &OptionsValidator{Want: 4}, Item{Options: []string{"a", "b", "c", "d"}}, false},
		{"options count", &OptionsValidator{Want: 4}, Item{Options: []string{"a", "b"}}, true},
		{"options any count", &OptionsValidator{}, Item{Options: []string{"a", "b"}}, false},
		{"options single", &OptionsValidator{}, Item{Options: []string{"a"}}, true},
		{"options blank", &OptionsValidator{Want: 4}, Item{Options: []string{"a", " ", "c", "d"}}, true},
		{"options duplicate", &OptionsValidator{Want: 4}, Item{Options: []string{"a", "b", " a", "d"}}, true},
		{"match exact", &AnswerMatchValidator{}, Item{Options: []string{"a", "b"}, Correct: "b"}, false},
		{"match folded", &AnswerMatchValidator{}, Item{Options: []string{"New  York", "b"}, Correct: "new york"}, false},
		{"match missing", &AnswerMatchValidator{}, Item{Options: []string{"a", "b"}, Correct: "c"}, true},
		{"match ambiguous", &AnswerMatchValidator{}, Item{Options: []string{"A", "a "}, Correct: "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := tt.item
			err := tt.v.Validate(&it, Request{})
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Validator != tt.v.Name() {
				t.Errorf("Validator = %q, want %q", err.Validator, tt.v.Name())
			}
		})
	}
}

func TestAnswerMatch_AdoptsOptionText(t *testing.T) {
	it := Item{Options: []string{"New  York", "Boston"}, Correct: "new york"}
	if err := (&AnswerMatchValidator{}).Validate(&it, Request{}); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if it.Correct != "New  York" {
		t.Errorf("Correct = %q, want option text", it.Correct)
	}
}
