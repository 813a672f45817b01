package summary

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
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/layout"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

type savedMsg struct {
	Err error
}

// SummaryScreen displays the result of a finished run. When the profile
// save failed it offers a retry that writes the same result again.
type SummaryScreen struct {
	svc     *tutor.Service
	run     *tutor.Run
	summary *quiz.Summary
	saveErr error
	saving  bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. saveErr is the error Finish returned
// alongside the summary, if any.
func New(svc *tutor.Service, run *tutor.Run, summary *quiz.Summary, saveErr error) *SummaryScreen {
	return &SummaryScreen{svc: svc, run: run, summary: summary, saveErr: saveErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.saveErr != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry save"},
			{Key: "Esc", Description: "Discard"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		s.saveErr = msg.Err
		return s, nil

	case tea.KeyPressMsg:
		if s.saving {
			return s, nil
		}
		switch msg.String() {
		case "r", "R":
			if s.saveErr != nil && s.svc != nil {
				s.saving = true
				svc, run := s.svc, s.run
				return s, func() tea.Msg {
					_, err := svc.Finish(context.Background(), run)
					return savedMsg{Err: err}
				}
			}
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	title := "Quiz complete!"
	if sum.Perfect() {
		title = "Perfect score!"
	}
	b.WriteString(theme.Centered(title, width, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)))
	b.WriteString("\n\n")

	rec := sum.Activity
	b.WriteString(theme.Centered(rec.Kind.DisplayName()+" · "+rec.Topic, width,
		lipgloss.NewStyle().Foreground(theme.TextDim)))
	b.WriteString("\n\n")

	accuracy := 0.0
	if sum.Total > 0 {
		accuracy = float64(sum.Correct) / float64(sum.Total) * 100
	}
	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Total, sum.Correct, accuracy)
	b.WriteString(theme.Centered(statsLine, width, lipgloss.NewStyle().Foreground(theme.Text)))
	b.WriteString("\n\n")

	if sum.Placed > 0 {
		b.WriteString(theme.Centered(fmt.Sprintf("You start at level %d", sum.Placed), width,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)))
		b.WriteString("\n\n")
	} else if sum.LeveledUp && s.run != nil {
		b.WriteString(theme.Centered(fmt.Sprintf("Level up! Now at level %d", s.run.Profile.Progress.Level), width,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)))
		b.WriteString("\n\n")
	}

	if len(sum.Unlocked) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Achievements")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, id := range sum.Unlocked {
			d, ok := achievements.Lookup(id)
			if !ok {
				continue
			}
			line := fmt.Sprintf("%s %s. %s", d.Icon, d.Title, d.Description)
			b.WriteString(theme.Centered(line, width, lipgloss.NewStyle().Foreground(theme.Accent)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	switch {
	case s.saving:
		b.WriteString(theme.Centered("Saving...", width, lipgloss.NewStyle().Foreground(theme.TextDim)))
	case s.saveErr != nil:
		b.WriteString(theme.Centered("Progress not saved: "+s.saveErr.Error(), width,
			lipgloss.NewStyle().Foreground(theme.Error)))
	}

	return b.String()
}
