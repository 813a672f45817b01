package trophies

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/tutor/tutortest"
)

const email = "ana@example.com"

func TestNothingUnlocked(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)

	s := New(f.Service, email)
	s.Update(s.Init()())

	v := s.View(100, 30)
	if !strings.Contains(v, "0/4 unlocked") {
		t.Errorf("view:\n%s", v)
	}
	if !strings.Contains(v, "🔒 First Steps") {
		t.Error("expected locked first quiz")
	}
}

func TestFirstQuizUnlocked(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)

	ctx := context.Background()
	f.QueueItems(3)
	run, err := f.Service.BeginPractice(ctx, email, "algebra", 3)
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

	if _, ok := s.unlocked[achievements.FirstQuiz]; !ok {
		t.Fatalf("unlocked = %v", s.unlocked)
	}
	v := s.View(100, 30)
	if !strings.Contains(v, "1/4 unlocked") || !strings.Contains(v, "unlocked Jun 01, 2026") {
		t.Errorf("view:\n%s", v)
	}
}

func TestEscPops(t *testing.T) {
	s := New(nil, email)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
