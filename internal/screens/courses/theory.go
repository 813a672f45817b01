package courses

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/layout"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

type theoryLoadedMsg struct {
	Text string
	Err  error
}

// TheoryScreen shows the explanation of one subtopic. The text is generated
// on first open and served from the course afterwards.
type TheoryScreen struct {
	svc                        *tutor.Service
	userID, courseID, moduleID string
	subtopic                   string

	text      string
	loaded    bool
	errMsg    string
	retryable bool
	offset    int
}

var _ screen.Screen = (*TheoryScreen)(nil)
var _ screen.KeyHintProvider = (*TheoryScreen)(nil)

func newTheory(svc *tutor.Service, userID, courseID, moduleID, subtopic string) *TheoryScreen {
	return &TheoryScreen{svc: svc, userID: userID, courseID: courseID, moduleID: moduleID, subtopic: subtopic}
}

func (t *TheoryScreen) Init() tea.Cmd {
	svc := t.svc
	userID, courseID, moduleID, subtopic := t.userID, t.courseID, t.moduleID, t.subtopic
	return func() tea.Msg {
		text, err := svc.Theory(context.Background(), userID, courseID, moduleID, subtopic)
		return theoryLoadedMsg{Text: text, Err: err}
	}
}

func (t *TheoryScreen) Title() string { return t.subtopic }

func (t *TheoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if t.retryable {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (t *TheoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case theoryLoadedMsg:
		t.loaded = true
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			t.retryable = tutor.IsRetryable(msg.Err)
			return t, nil
		}
		t.text = msg.Text
		t.errMsg = ""
		t.retryable = false
		return t, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return t, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if t.offset > 0 {
				t.offset--
			}
		case "down", "j":
			t.offset++
		case "r", "R":
			if t.retryable {
				t.loaded = false
				t.retryable = false
				return t, t.Init()
			}
		}
	}
	return t, nil
}

func (t *TheoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case !t.loaded:
		return theme.Centered("\n\nBrainy is preparing the lesson...", width, dim)
	case t.errMsg != "":
		return theme.Centered("\n\n"+t.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error))
	}

	body := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Render(t.text)
	lines := strings.Split(body, "\n")

	visible := max(height-2, 1)
	t.offset = min(t.offset, max(len(lines)-visible, 0))
	end := min(t.offset+visible, len(lines))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		"\n"+strings.Join(lines[t.offset:end], "\n"))
}
