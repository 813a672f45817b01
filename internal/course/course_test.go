package course

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleCourse() Course {
	return New("Algebra", []Outline{
		{Title: "Linear equations", Subtopics: []string{"One variable", "Two variables"}},
		{Title: "Quadratics", Subtopics: []string{"Factoring", " Factoring ", ""}},
		{Title: "  ", Subtopics: nil},
	}, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
}

func TestNew(t *testing.T) {
	c := sampleCourse()

	if !strings.HasPrefix(c.ID, "course_") || len(c.ID) != len("course_")+8 {
		t.Errorf("course id = %q", c.ID)
	}
	if len(c.Modules) != 3 {
		t.Fatalf("modules = %d, want 3", len(c.Modules))
	}

	seen := map[string]bool{}
	for _, m := range c.Modules {
		if !strings.HasPrefix(m.ID, "mod_") || len(m.ID) != len("mod_")+6 {
			t.Errorf("module id = %q", m.ID)
		}
		if seen[m.ID] {
			t.Errorf("duplicate module id %q", m.ID)
		}
		seen[m.ID] = true
		if m.Completed || m.ExamGrade != nil {
			t.Errorf("module %q should start incomplete and ungraded", m.Title)
		}
	}

	if got := c.Modules[1].Subtopics; len(got) != 1 || got[0] != "Factoring" {
		t.Errorf("subtopics not cleaned: %q", got)
	}
	if c.Modules[2].Title != "Untitled module" {
		t.Errorf("blank title = %q", c.Modules[2].Title)
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		correct, total int
		want           string
	}{
		{5, 5, "10"},
		{0, 5, "0"},
		{3, 5, "6"},
		{2, 3, "6.67"},
		{1, 3, "3.33"},
		{1, 0, "0"},
	}
	for _, tt := range tests {
		got := Grade(tt.correct, tt.total)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Grade(%d, %d) = %s, want %s", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestCompleteModule(t *testing.T) {
	c := sampleCourse()

	if got := c.AverageGrade(); got != nil {
		t.Fatalf("AverageGrade before any exam = %s, want nil", got)
	}
	if c.Progress() != 0 {
		t.Fatalf("Progress = %v, want 0", c.Progress())
	}

	if err := c.CompleteModule(c.Modules[0].ID, Grade(4, 5)); err != nil {
		t.Fatalf("CompleteModule: %v", err)
	}
	if err := c.CompleteModule(c.Modules[1].ID, Grade(2, 3)); err != nil {
		t.Fatalf("CompleteModule: %v", err)
	}

	if got, want := c.Progress(), 2.0/3.0; got != want {
		t.Errorf("Progress = %v, want %v", got, want)
	}
	avg := c.AverageGrade()
	if avg == nil || !avg.Equal(decimal.RequireFromString("7.34")) {
		t.Errorf("AverageGrade = %v, want 7.34", avg)
	}

	// Retaking records the latest grade.
	if err := c.CompleteModule(c.Modules[0].ID, Grade(5, 5)); err != nil {
		t.Fatalf("CompleteModule retake: %v", err)
	}
	if !c.Modules[0].ExamGrade.Equal(MaxGrade) {
		t.Errorf("retake grade = %s, want 10", c.Modules[0].ExamGrade)
	}
}

func TestCompleteModule_Unknown(t *testing.T) {
	c := sampleCourse()
	err := c.CompleteModule("mod_nope", Grade(1, 1))
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("err = %v, want ErrModuleNotFound", err)
	}
}

func TestTheoryCache(t *testing.T) {
	c := sampleCourse()
	m := &c.Modules[0]

	if _, ok := m.CachedTheory("One variable"); ok {
		t.Fatal("expected empty cache")
	}
	m.StoreTheory("One variable", "x + 1 = 2 means x = 1")
	text, ok := m.CachedTheory("One variable")
	if !ok || text != "x + 1 = 2 means x = 1" {
		t.Errorf("CachedTheory = %q, %v", text, ok)
	}
	if !m.HasSubtopic("Two variables") || m.HasSubtopic("Factoring") {
		t.Error("HasSubtopic mismatch")
	}
}
