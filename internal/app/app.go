// Package app hosts the root Bubble Tea model: the screen router framed by
// the header and footer.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	"github.com/abhisek/braincourse/internal/screens/home"
	"github.com/abhisek/braincourse/internal/screens/welcome"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/layout"
)

// headerStatsMsg carries the learner status shown in the header.
type headerStatsMsg layout.HeaderStats

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    *tutor.Service
	userID string
	router *router.Router
	stats  layout.HeaderStats
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome greeting.
func newAppModel(svc *tutor.Service, userID string, llmReady bool) AppModel {
	splash := welcome.New(greeter(svc, userID), func() screen.Screen {
		return home.New(svc, userID, llmReady)
	})
	return AppModel{
		svc:    svc,
		userID: userID,
		router: router.New(splash),
	}
}

// greeter loads the welcome recap. It returns nil without a service.
func greeter(svc *tutor.Service, userID string) welcome.GreetFunc {
	if svc == nil {
		return nil
	}
	return func() welcome.Greeting {
		p, err := svc.Profile(context.Background(), userID)
		if err != nil {
			return welcome.Greeting{Err: err}
		}
		g := welcome.Greeting{
			Name:   p.Name,
			Level:  p.Progress.Level,
			Streak: p.Progress.CorrectStreak,
		}
		if st := p.Student(); st != nil {
			g.Unread = st.Unread()
		}
		if len(p.Progress.ActivityLog) > 0 {
			last := p.Progress.ActivityLog[0]
			g.Last = &last
		}
		return g
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadStats())
}

// loadStats reads level and streak for the header. Failures leave the
// previous values in place; the screens report store errors themselves.
func (m AppModel) loadStats() tea.Cmd {
	svc, userID := m.svc, m.userID
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := svc.Profile(context.Background(), userID)
		if err != nil {
			return nil
		}
		return headerStatsMsg{Level: p.Progress.Level, Streak: p.Progress.CorrectStreak}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatsMsg:
		m.stats = layout.HeaderStats(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	// Navigation usually follows a finished quiz, so the header is
	// refreshed alongside it.
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
		return m, tea.Batch(m.router.Update(msg), m.loadStats())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program for userID. llmReady reports whether a
// generation provider is configured.
func Run(svc *tutor.Service, userID string, llmReady bool) error {
	p := tea.NewProgram(newAppModel(svc, userID, llmReady))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
