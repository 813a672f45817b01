// Package setup is the practice quiz setup flow: pick a topic, then a length.
package setup

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	quizscreen "github.com/abhisek/braincourse/internal/screens/quiz"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/components"
	"github.com/abhisek/braincourse/internal/ui/layout"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

// SetupScreen drives quiz.Setup from the keyboard.
type SetupScreen struct {
	svc    *tutor.Service
	userID string
	setup  *quiz.Setup
	input  components.TextInput
	menu   components.Menu
	recent []string
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen offering the service's practice lengths.
// Recent topics are suggested under the input.
func New(svc *tutor.Service, userID string) *SetupScreen {
	s := &SetupScreen{
		svc:    svc,
		userID: userID,
		setup:  quiz.NewSetup(svc.PracticeLengths()...),
		input:  components.NewTextInput("e.g. fractions, photosynthesis, French verbs", 80),
	}
	if p, err := svc.Profile(context.Background(), userID); err == nil && p.Progress != nil {
		s.recent = p.Progress.RecentTopics
	}
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SetupScreen) Title() string {
	return "New Practice Quiz"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.setup.State() == quiz.AwaitingLength {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc":
			if s.setup.State() == quiz.AwaitingLength {
				s.setup = quiz.NewSetup(s.setup.Allowed()...)
				return s, s.input.Init()
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			if s.setup.State() == quiz.AwaitingTopic {
				return s.chooseTopic()
			}
		}
	}

	if s.setup.State() == quiz.AwaitingLength {
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SetupScreen) chooseTopic() (screen.Screen, tea.Cmd) {
	if err := s.setup.ChooseTopic(s.input.Value()); err != nil {
		s.errMsg = "Please type a topic first."
		return s, nil
	}
	s.errMsg = ""

	items := make([]components.MenuItem, 0, len(s.setup.Allowed()))
	for _, n := range s.setup.Allowed() {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d questions", n),
			Hint:   lengthHint(n),
			Action: func() tea.Cmd { return s.chooseLength(n) },
		})
	}
	s.menu = components.NewMenu(items)
	return s, nil
}

// lengthHint notes which lengths can earn the perfect-score achievement.
func lengthHint(n int) string {
	if n >= achievements.PerfectScoreMinQuestions {
		return "perfect score counts"
	}
	return "warm-up"
}

func (s *SetupScreen) chooseLength(n int) tea.Cmd {
	if err := s.setup.ChooseLength(n); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	params, _ := s.setup.Params()
	svc, userID := s.svc, s.userID
	next := quizscreen.New(svc, "Practice · "+params.Topic, func(ctx context.Context) (*tutor.Run, error) {
		return svc.BeginPractice(ctx, userID, params.Topic, params.Count)
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	switch s.setup.State() {
	case quiz.AwaitingTopic:
		b.WriteString(theme.Centered("What would you like to practice?", width, label))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
		b.WriteString("\n")
		if len(s.recent) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Centered("Recent: "+strings.Join(s.recent, ", "), width, theme.Hint))
			b.WriteString("\n")
		}
	case quiz.AwaitingLength:
		b.WriteString(theme.Centered("How many questions about "+s.input.Value()+"?", width, label))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Centered(s.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error)))
	}
	return b.String()
}
