package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *QuizScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return s.renderWaiting(width, "Brainy is writing your questions...")
	case phaseFinishing:
		return s.renderWaiting(width, "Saving your progress...")
	case phaseFailed:
		return s.renderError(width)
	case phaseQuitConfirm:
		return renderQuitConfirm(width)
	}
	return s.renderItem(width)
}

func (s *QuizScreen) spinner() string {
	return lipgloss.NewStyle().Foreground(theme.Accent).
		Render(spinnerFrames[s.frame%len(spinnerFrames)])
}

func (s *QuizScreen) renderWaiting(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n" + s.spinner() + "  " + text)
}

func (s *QuizScreen) renderError(width int) string {
	hint := "Press any key to go back."
	if s.retryable {
		hint = "Press R to try again, any other key to go back."
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  %s", s.errMsg, hint))
}

// renderItem renders the progress line, the current item and any feedback.
func (s *QuizScreen) renderItem(width int) string {
	sess := s.run.Session
	var b strings.Builder

	number := sess.Index + 1
	if s.phase == phaseFeedback {
		number = sess.Index
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + sess.Topic)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			number, len(sess.Items),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			sess.CorrectCount,
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	block := lipgloss.NewStyle().Width(min(width-8, 72)).Render(s.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")

	if s.phase == phaseFeedback {
		b.WriteString(s.renderFeedback(width))
	}

	if s.helpLoading || s.help != "" {
		b.WriteString("\n")
		b.WriteString(s.renderHelp(width))
	}

	return b.String()
}

func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder
	if s.last.WasCorrect {
		b.WriteString(theme.Centered("Correct!", width, theme.Correct))
	} else {
		b.WriteString(theme.Centered("Not quite", width, theme.Incorrect))
		b.WriteString("\n")
		b.WriteString(theme.Centered("Correct answer: "+s.last.Correct, width,
			lipgloss.NewStyle().Foreground(theme.TextDim)))
	}
	b.WriteString("\n")

	notice := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if s.last.LeveledUp {
		b.WriteString("\n")
		b.WriteString(theme.Centered(fmt.Sprintf("Level up! You are now level %d", s.run.Profile.Progress.Level), width, notice))
	}
	for _, id := range s.last.Unlocked {
		if d, ok := achievements.Lookup(id); ok {
			b.WriteString("\n")
			b.WriteString(theme.Centered(fmt.Sprintf("%s Achievement unlocked: %s", d.Icon, d.Title), width, notice))
		}
	}
	return b.String()
}

func (s *QuizScreen) renderHelp(width int) string {
	label := map[content.ExplainMode]string{
		content.ExplainHint:     "Hint",
		content.ExplainSolution: "Solution",
		content.ExplainWhy:      "Why",
	}[s.helpMode]

	body := s.help
	if s.helpLoading {
		body = s.spinner() + "  Brainy is thinking..."
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(min(width-8, 72)).
		Padding(0, 1).
		Render(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(label) + "\n" + body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered("Leave this quiz?", width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true)))
	b.WriteString("\n")
	b.WriteString(theme.Centered("Answers so far will not be saved.", width, lipgloss.NewStyle().Foreground(theme.TextDim)))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered("[Y] Yes, leave", width, lipgloss.NewStyle().Foreground(theme.Error)))
	b.WriteString("\n")
	b.WriteString(theme.Centered("[N] No, keep going", width, lipgloss.NewStyle().Foreground(theme.Primary)))
	return b.String()
}
