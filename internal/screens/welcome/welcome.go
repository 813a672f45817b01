// Package welcome is the greeting shown at startup: the mascot, the banner
// and a one-line recap of where the learner left off.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/progress"
	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

const (
	tickInterval = 150 * time.Millisecond

	// blinkEvery is the number of ticks between mascot blinks.
	blinkEvery = 20

	// bannerAfter is the number of ticks before the banner appears.
	bannerAfter = 4
)

const mascotOpen = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ ?!✓ │  │
  │  └─────┘  │
  ╰───────────╯`

const brainArt = ` ██████╗ ██████╗  █████╗ ██╗███╗   ██╗
 ██╔══██╗██╔══██╗██╔══██╗██║████╗  ██║
 ██████╔╝██████╔╝███████║██║██╔██╗ ██║
 ██╔══██╗██╔══██╗██╔══██║██║██║╚██╗██║
 ██████╔╝██║  ██║██║  ██║██║██║ ╚████║
 ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝`

// banner renders the wordmark, spelled out on terminals too narrow for the
// block letters.
func banner(width int) string {
	brain := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	course := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if width < lipgloss.Width(brainArt)+4 {
		return brain.Render("B R A I N") + course.Render(" · C O U R S E")
	}
	return lipgloss.JoinVertical(lipgloss.Center, brain.Render(brainArt), course.Render("C  O  U  R  S  E"))
}

// Greeting is the recap of the learner's record.
type Greeting struct {
	Name   string
	Level  int
	Streak int
	Unread int

	// Last is the most recent activity, nil for a new learner.
	Last *progress.ActivityRecord

	Err error
}

// GreetFunc loads the greeting. It runs off the UI goroutine.
type GreetFunc func() Greeting

type tickMsg time.Time

type greetedMsg Greeting

// WelcomeScreen greets the learner and hands over to the home screen on
// any key.
type WelcomeScreen struct {
	greet  GreetFunc
	next   func() screen.Screen
	ticks  int
	loaded bool
	info   Greeting
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. greet may be nil, in which case no recap is
// shown. next builds the screen that replaces the greeting.
func New(greet GreetFunc, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{greet: greet, next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if greet := w.greet; greet != nil {
		cmds = append(cmds, func() tea.Msg { return greetedMsg(greet()) })
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		w.ticks++
		return w, tick()

	case greetedMsg:
		w.loaded = true
		w.info = Greeting(msg)
		return w, nil

	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave replaces the greeting with the next screen. Only the first key
// counts.
func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) mascot() string {
	art := mascotOpen
	if w.ticks > 0 && w.ticks%blinkEvery == 0 {
		art = strings.Replace(art, "◉ ◉", "─ ─", 1)
	}
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(art)
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.mascot()}

	if w.ticks >= bannerAfter {
		sections = append(sections, "", banner(width), "")
		if w.loaded {
			sections = append(sections, w.recap()...)
		} else {
			sections = append(sections, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Learn anything, one question at a time."))
		}
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// recap renders the greeting lines.
func (w *WelcomeScreen) recap() []string {
	g := w.info
	bold := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	if g.Err != nil {
		return []string{lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load your profile: " + g.Err.Error())}
	}

	name := g.Name
	if name == "" {
		name = "learner"
	}
	lines := []string{bold.Render(fmt.Sprintf("Welcome back, %s!", name))}

	status := lipgloss.NewStyle().Foreground(theme.Info).Render(fmt.Sprintf("Level %d", g.Level)) +
		dim.Render("  ·  ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("🔥 %d in a row", g.Streak))
	if g.Unread > 0 {
		status += dim.Render("  ·  ") +
			lipgloss.NewStyle().Foreground(theme.Highlight).Render(fmt.Sprintf("✉ %d new", g.Unread))
	}
	lines = append(lines, status)

	if g.Last == nil {
		lines = append(lines, dim.Render("Take the placement test to find your starting level."))
	} else {
		lines = append(lines, dim.Render(fmt.Sprintf("Last time: %s on %s, %s",
			g.Last.Kind.DisplayName(), g.Last.Topic, g.Last.Result())))
	}
	return lines
}
