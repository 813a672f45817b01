package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/progress"
	"github.com/abhisek/braincourse/internal/ui/components"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

const wordmark = ` ___          _        ___
| _ )_ _ __ _(_)_ _   / __|___ _  _ _ _ ___ ___
| _ \ '_/ _' | | ' \ | (__/ _ \ || | '_(_-</ -_)
|___/_| \__,_|_|_||_| \___\___/\_,_|_| /__/\___|`

// stats is the learner dashboard shown above the menu.
type stats struct {
	Level        int
	Streak       int
	Accuracy     float64
	Answered     int
	Achievements int
	Unread       int
}

// toNextLevel is the number of correct answers in a row still needed for
// the next level.
func (s stats) toNextLevel() int {
	return progress.LevelUpEvery - s.Streak%progress.LevelUpEvery
}

func renderWordmark(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	if compact || cw < lipgloss.Width(wordmark) {
		return theme.Centered("B R A I N · C O U R S E", cw, style)
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, style.Render(wordmark))
}

// tile is one boxed figure of the dashboard.
func tile(value, caption string, fg lipgloss.Style, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(fg.Bold(true).Render(value) + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption))
}

// renderDashboard shows level, streak and accuracy side by side with the
// achievement count below. Compact terminals get a single line.
func renderDashboard(s stats, cw int, compact bool) string {
	level := lipgloss.NewStyle().Foreground(theme.Highlight)
	streak := lipgloss.NewStyle().Foreground(theme.Accent)
	acc := lipgloss.NewStyle().Foreground(theme.ScoreColor(s.Accuracy))
	total := len(achievements.Catalog())

	if compact {
		line := fmt.Sprintf("%s  %s  %s",
			level.Render(fmt.Sprintf("LEVEL %d", s.Level)),
			streak.Render(fmt.Sprintf("🔥%d", s.Streak)),
			lipgloss.NewStyle().Foreground(theme.Info).Render(fmt.Sprintf("🏆%d/%d", s.Achievements, total)))
		return theme.Centered(line, cw, lipgloss.NewStyle())
	}

	accValue, accCaption := "-", "no answers yet"
	if s.Answered > 0 {
		accValue = fmt.Sprintf("%.0f%%", s.Accuracy*100)
		accCaption = fmt.Sprintf("of %d answers", s.Answered)
	}

	w := cw/3 - 2
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		tile(fmt.Sprintf("LEVEL %d", s.Level), fmt.Sprintf("%d more to level up", s.toNextLevel()), level, w),
		tile(fmt.Sprintf("🔥 %d", s.Streak), "in a row", streak, w),
		tile(accValue, accCaption, acc, w),
	)

	trophies := components.Counted(s.Achievements, total, "achievements", cw-4).View()
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(cw, lipgloss.Center, row),
		lipgloss.PlaceHorizontal(cw, lipgloss.Center, trophies))
}

// renderInbox nudges the learner toward unread teacher messages.
func renderInbox(unread, cw int) string {
	if unread == 0 {
		return ""
	}
	return theme.Centered(fmt.Sprintf("✉ %d unread from your teachers", unread), cw,
		lipgloss.NewStyle().Foreground(theme.Info))
}

func renderMenu(m components.Menu, cw int, compact bool) string {
	box := lipgloss.NewStyle().Padding(0, 2)
	if !compact {
		box = box.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, box.Render(m.View()))
}

func renderLLMBanner(cw int) string {
	return theme.Centered("⚠ Set an LLM API key to generate quizzes (see braincourse --help)", cw,
		lipgloss.NewStyle().Foreground(theme.Accent))
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, RenderMascot(variant))
}
