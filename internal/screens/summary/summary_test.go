package summary

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/progress"
	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/router"
)

func testSummary() *quiz.Summary {
	return &quiz.Summary{
		Correct:  5,
		Total:    5,
		Unlocked: []achievements.ID{achievements.FirstQuiz, achievements.PerfectScore},
		Activity: progress.ActivityRecord{
			Kind:    progress.ActivityPractice,
			Topic:   "fractions",
			Correct: 5,
			Total:   5,
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(nil, nil, testSummary(), nil)
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(nil, nil, testSummary(), nil)
	view := s.View(100, 30)
	for _, want := range []string{"Perfect score!", "fractions", "First Steps", "Brilliant Mind"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Placement(t *testing.T) {
	sum := &quiz.Summary{
		Correct:   4,
		Total:     5,
		LeveledUp: true,
		Placed:    5,
		Activity:  progress.ActivityRecord{Kind: progress.ActivityPlacement, Topic: "Placement", Correct: 4, Total: 5},
	}
	view := New(nil, nil, sum, nil).View(100, 30)
	if !strings.Contains(view, "You start at level 5") {
		t.Error("placement should announce the starting level")
	}
	if strings.Contains(view, "Level up!") {
		t.Error("placement is not a level up")
	}
}

func TestSummaryScreen_SaveError(t *testing.T) {
	s := New(nil, nil, testSummary(), errors.New("disk full"))
	if !strings.Contains(s.View(100, 30), "disk full") {
		t.Error("expected save error in view")
	}
	hints := s.KeyHints()
	if len(hints) == 0 || hints[0].Key != "R" {
		t.Errorf("KeyHints = %+v, want retry first", hints)
	}
}

func TestSummaryScreen_SavedClearsError(t *testing.T) {
	s := New(nil, nil, testSummary(), errors.New("disk full"))
	s.saving = true
	s.Update(savedMsg{})
	if s.saveErr != nil || s.saving {
		t.Errorf("saveErr=%v saving=%v after successful retry", s.saveErr, s.saving)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(nil, nil, testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Enter should return to the screen that started the quiz")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(nil, nil, testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("Esc should go home")
	}
}
