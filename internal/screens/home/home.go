// Package home is the main menu and learner dashboard.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	"github.com/abhisek/braincourse/internal/screens/courses"
	"github.com/abhisek/braincourse/internal/screens/history"
	quizscreen "github.com/abhisek/braincourse/internal/screens/quiz"
	"github.com/abhisek/braincourse/internal/screens/setup"
	"github.com/abhisek/braincourse/internal/screens/trophies"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/components"
	"github.com/abhisek/braincourse/internal/ui/layout"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

// hotStreak is the streak at which Brainy starts celebrating.
const hotStreak = 3

type statsLoadedMsg struct {
	Name  string
	Stats stats
	Err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc        *tutor.Service
	userID     string
	llmReady   bool
	menu     components.Menu
	name     string
	stats    stats
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Reloader = (*HomeScreen)(nil)

// New creates a new HomeScreen. Without a configured LLM the entries that
// need generated questions are disabled.
func New(svc *tutor.Service, userID string, llmReady bool) *HomeScreen {
	h := &HomeScreen{svc: svc, userID: userID, llmReady: llmReady}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Disabled: !llmReady, Action: push(func() screen.Screen {
			return setup.New(svc, userID)
		})},
		{Label: "PLACEMENT TEST", Disabled: !llmReady, Action: push(func() screen.Screen {
			return quizscreen.New(svc, "Placement", func(ctx context.Context) (*tutor.Run, error) {
				return svc.BeginPlacement(ctx, userID)
			})
		})},
		{Label: "COURSES", Action: push(func() screen.Screen {
			return courses.New(svc, userID)
		})},
		{Label: "HISTORY", Action: push(func() screen.Screen {
			return history.New(svc, userID)
		})},
		{Label: "ACHIEVEMENTS", Action: push(func() screen.Screen {
			return trophies.New(svc, userID)
		})},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	for i := range items {
		if items[i].Disabled {
			items[i].Hint = "needs an LLM key"
		}
	}
	h.menu = components.NewMenu(items)
	return h
}

// Reload refreshes the dashboard when a quiz hands control back.
func (h *HomeScreen) Reload() tea.Cmd { return h.Init() }

// Init loads the dashboard. The router calls it again on PopToRoot, so
// finished quizzes show up immediately.
func (h *HomeScreen) Init() tea.Cmd {
	svc, userID := h.svc, h.userID
	return func() tea.Msg {
		p, err := svc.Profile(context.Background(), userID)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		pr := p.Progress
		st := stats{
			Level:        pr.Level,
			Streak:       pr.CorrectStreak,
			Accuracy:     pr.Accuracy(),
			Answered:     pr.Statistics.TotalQuestions,
			Achievements: len(pr.Achievements),
		}
		if s := p.Student(); s != nil {
			st.Unread = s.Unread()
		}
		return statsLoadedMsg{Name: p.Name, Stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.name = msg.Name
		h.stats = msg.Stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case !h.llmReady:
		return MascotAlert
	case h.stats.Streak >= hotStreak:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < layout.CompactHeight || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	sections := []string{renderWordmark(cw, compact)}

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}

	if h.name != "" {
		sections = append(sections, theme.Centered("Welcome back, "+h.name+"!", cw,
			lipgloss.NewStyle().Foreground(theme.Text)))
	}
	sections = append(sections, renderDashboard(h.stats, cw, compact))
	if inbox := renderInbox(h.stats.Unread, cw); inbox != "" {
		sections = append(sections, inbox)
	}
	sections = append(sections, renderMenu(h.menu, cw, compact))

	if !h.llmReady {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.errMsg != "" {
		sections = append(sections, theme.Centered(h.errMsg, cw, lipgloss.NewStyle().Foreground(theme.Error)))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-6", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
