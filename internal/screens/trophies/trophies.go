// Package trophies shows the achievement catalog with what the learner has
// unlocked.
package trophies

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/components"
	"github.com/abhisek/braincourse/internal/ui/layout"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

type unlocksLoadedMsg struct {
	Unlocked map[achievements.ID]time.Time
	Err      error
}

// TrophyScreen lists every achievement in catalog order.
type TrophyScreen struct {
	svc      *tutor.Service
	userID   string
	unlocked map[achievements.ID]time.Time
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*TrophyScreen)(nil)
var _ screen.KeyHintProvider = (*TrophyScreen)(nil)

// New creates a new TrophyScreen.
func New(svc *tutor.Service, userID string) *TrophyScreen {
	return &TrophyScreen{svc: svc, userID: userID}
}

func (s *TrophyScreen) Init() tea.Cmd {
	svc, userID := s.svc, s.userID
	return func() tea.Msg {
		p, err := svc.Profile(context.Background(), userID)
		if err != nil {
			return unlocksLoadedMsg{Err: err}
		}
		out := make(map[achievements.ID]time.Time)
		for _, u := range achievements.Unlocked(p.Progress) {
			out[u.ID] = u.At
		}
		return unlocksLoadedMsg{Unlocked: out}
	}
}

func (s *TrophyScreen) Title() string {
	return "Achievements"
}

func (s *TrophyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TrophyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case unlocksLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.unlocked = msg.Unlocked
	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *TrophyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Centered("\n\nError: "+s.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error))
	}
	if !s.loaded {
		return theme.Centered("\n\nLoading...", width, lipgloss.NewStyle().Foreground(theme.TextDim))
	}

	catalog := achievements.Catalog()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Counted(len(s.unlocked), len(catalog), "unlocked", cw).View()))
	b.WriteString("\n\n")

	var cards []string
	for _, d := range catalog {
		cards = append(cards, s.renderCard(d))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(strings.Join(cards, "\n\n"), cw)))
	return b.String()
}

func (s *TrophyScreen) renderCard(d achievements.Definition) string {
	at, ok := s.unlocked[d.ID]
	if !ok {
		return lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("🔒 %s\n%s", d.Title, d.Description))
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(d.Icon+" "+d.Title) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(d.Description) + "\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("unlocked "+at.Format("Jan 02, 2006"))
}
