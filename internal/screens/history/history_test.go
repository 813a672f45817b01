package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/router"
	quizscreen "github.com/abhisek/braincourse/internal/screens/quiz"
	"github.com/abhisek/braincourse/internal/tutor/tutortest"
)

const email = "ana@example.com"

// playOnce finishes a 3 question practice quiz with one right answer.
func playOnce(t *testing.T, f *tutortest.Fixture) {
	t.Helper()
	ctx := context.Background()
	f.QueueItems(3)
	run, err := f.Service.BeginPractice(ctx, email, "algebra", 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; !run.Session.Done(); i++ {
		item, _ := run.Session.Current()
		ans := "no"
		if i == 0 {
			ans = item.Correct
		}
		if _, err := f.Service.Answer(run, ans); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.Service.Finish(ctx, run); err != nil {
		t.Fatal(err)
	}
}

func TestHistoryEmpty(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)
	s := New(f.Service, email)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No quizzes yet") {
		t.Error("expected empty state")
	}
}

func TestHistoryListsAndExpands(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)
	playOnce(t, f)

	s := New(f.Service, email)
	s.Update(s.Init()())
	view := s.View(120, 30)
	if !strings.Contains(view, "Practice Quiz") || !strings.Contains(view, "1/3") {
		t.Errorf("view missing record:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "you: no") {
		t.Error("expanded view should list missed answers")
	}
}

func TestHistoryReviewPushesQuiz(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)
	playOnce(t, f)

	s := New(f.Service, email)
	s.Update(s.Init()())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected review command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("pushed %T, want quiz", push.Screen)
	}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, time.Local)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-time.Hour), "Today"},
		{time.Date(2026, 6, 9, 23, 30, 0, 0, time.Local), "Yesterday"},
		{time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local), "Mon, Jun 01 2026"},
	}
	for _, tt := range tests {
		if got := dayLabel(tt.at, now); got != tt.want {
			t.Errorf("dayLabel(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestHistoryGroupsByDay(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)
	playOnce(t, f)

	s := New(f.Service, email)
	s.now = func() time.Time { return tutortest.Now }
	s.Update(s.Init()())
	view := s.View(120, 30)
	if !strings.Contains(view, "Today") || !strings.Contains(view, "2 missed") {
		t.Errorf("view should group under Today and count misses:\n%s", view)
	}
}

func TestHistoryPlacementNotReviewable(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)
	ctx := context.Background()
	f.QueueItems(quiz.PlacementLength)
	run, err := f.Service.BeginPlacement(ctx, email)
	if err != nil {
		t.Fatal(err)
	}
	for !run.Session.Done() {
		if _, err := f.Service.Answer(run, "no"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.Service.Finish(ctx, run); err != nil {
		t.Fatal(err)
	}

	s := New(f.Service, email)
	s.Update(s.Init()())
	if s.canReview() {
		t.Error("placement record should not offer a review")
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("r on a placement record should do nothing")
	}
}
