package setup

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/router"
	quizscreen "github.com/abhisek/braincourse/internal/screens/quiz"
	"github.com/abhisek/braincourse/internal/tutor/tutortest"
)

func newSetup(t *testing.T) *SetupScreen {
	t.Helper()
	f := tutortest.New(t)
	f.AddStudent(t, "ana@example.com")
	return New(f.Service, "ana@example.com")
}

func TestEmptyTopicRejected(t *testing.T) {
	s := newSetup(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.setup.State() != quiz.AwaitingTopic {
		t.Errorf("state = %v, want awaiting topic", s.setup.State())
	}
	if s.errMsg == "" {
		t.Error("expected an error message")
	}
}

func TestTopicThenLengthStartsQuiz(t *testing.T) {
	s := newSetup(t)
	s.input.Model.SetValue("  photosynthesis ")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.setup.State() != quiz.AwaitingLength {
		t.Fatalf("state = %v, want awaiting length", s.setup.State())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command choosing the length")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("screen = %T, want quiz", msg.Screen)
	}
	if got := msg.Screen.Title(); got != "Practice · photosynthesis" {
		t.Errorf("title = %q", got)
	}
}

func TestEscFromLengthReturnsToTopic(t *testing.T) {
	s := newSetup(t)
	s.input.Model.SetValue("algebra")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.setup.State() != quiz.AwaitingTopic {
		t.Errorf("state = %v, want awaiting topic", s.setup.State())
	}
}

func TestEscFromTopicPops(t *testing.T) {
	s := newSetup(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestDigitPicksLength(t *testing.T) {
	s := newSetup(t)
	s.input.Model.SetValue("algebra")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	_, cmd := s.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil {
		t.Fatal("digit should choose a length")
	}
	params, err := s.setup.Params()
	if err != nil {
		t.Fatal(err)
	}
	if params.Count != 10 {
		t.Errorf("count = %d, want 10", params.Count)
	}
}

func TestLengthHint(t *testing.T) {
	if lengthHint(3) != "warm-up" || lengthHint(5) != "perfect score counts" {
		t.Error("hints should follow the perfect score threshold")
	}
}
