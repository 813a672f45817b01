package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screens/setup"
	"github.com/abhisek/braincourse/internal/tutor/tutortest"
)

const email = "ana@example.com"

func TestStatsLoaded(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)

	h := New(f.Service, email, true)
	h.Update(h.Init()())

	if h.errMsg != "" {
		t.Fatalf("errMsg = %q", h.errMsg)
	}
	if h.stats.Level != 1 || h.stats.Answered != 0 {
		t.Errorf("stats = %+v", h.stats)
	}
	if v := h.View(120, 40); !strings.Contains(v, "LEVEL 1") {
		t.Errorf("view missing level:\n%s", v)
	}
}

func TestMenuPushesSetup(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)

	h := New(f.Service, email, true)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*setup.SetupScreen); !ok {
		t.Errorf("pushed %T, want setup", push.Screen)
	}
}

func TestNoLLMDisablesGeneration(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)

	h := New(f.Service, email, false)
	if h.menu.Selected != 2 {
		t.Errorf("selected = %d, want first enabled item (COURSES)", h.menu.Selected)
	}
	if h.mascot() != MascotAlert {
		t.Error("expected alert mascot")
	}
	if v := h.View(120, 40); !strings.Contains(v, "LLM API key") {
		t.Error("expected LLM banner")
	}
}

func TestMascotCelebratesStreak(t *testing.T) {
	h := &HomeScreen{llmReady: true, stats: stats{Streak: hotStreak}}
	if h.mascot() != MascotCelebrating {
		t.Error("expected celebrating mascot")
	}
}

func TestDisabledItemsExplainWhy(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)

	h := New(f.Service, email, false)
	if v := h.View(120, 40); !strings.Contains(v, "needs an LLM key") {
		t.Error("disabled entries should say what they need")
	}
}

func TestToNextLevel(t *testing.T) {
	tests := []struct {
		streak, want int
	}{
		{0, 3},
		{1, 2},
		{2, 1},
		{3, 3},
		{7, 2},
	}
	for _, tt := range tests {
		if got := (stats{Streak: tt.streak}).toNextLevel(); got != tt.want {
			t.Errorf("streak %d: toNextLevel = %d, want %d", tt.streak, got, tt.want)
		}
	}
}

func TestInboxOnlyWithUnread(t *testing.T) {
	if renderInbox(0, 60) != "" {
		t.Error("no inbox line without unread messages")
	}
	if !strings.Contains(renderInbox(2, 60), "2 unread") {
		t.Error("inbox should show the unread count")
	}
}
