package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestPopToRootReinitsBottom(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)
	r.Push(&stubScreen{title: "setup"})
	r.Push(&stubScreen{title: "quiz"})

	r.Update(PopToRootMsg{})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("expected active 'home', got %q", r.Active().Title())
	}
	if !s1.initRan {
		t.Error("expected Init() to run on the root screen")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	s2 := &countingScreen{}
	r := New(s1)
	r.Push(s2)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if s2.updates != 1 {
		t.Errorf("expected 1 update on active screen, got %d", s2.updates)
	}
}

type countingScreen struct {
	stubScreen
	updates int
}

func (c *countingScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	c.updates++
	return c, nil
}

type reloadingScreen struct {
	stubScreen
	reloads int
}

type reloadedMsg struct{}

func (r *reloadingScreen) Reload() tea.Cmd {
	r.reloads++
	return func() tea.Msg { return reloadedMsg{} }
}

func TestPopReloadsRevealedScreen(t *testing.T) {
	detail := &reloadingScreen{stubScreen: stubScreen{title: "course"}}
	r := New(&stubScreen{title: "home"})
	r.Push(detail)
	r.Push(&stubScreen{title: "summary"})

	cmd := r.Update(PopScreenMsg{})

	if detail.reloads != 1 {
		t.Fatalf("expected 1 reload, got %d", detail.reloads)
	}
	if cmd == nil {
		t.Fatal("expected the reload command")
	}
	if _, ok := cmd().(reloadedMsg); !ok {
		t.Error("expected reloadedMsg")
	}

	// Revealing a screen without Reload yields no command.
	if cmd := r.Pop(); cmd != nil {
		t.Error("plain screen should not produce a command")
	}
}
