// Package layout renders the chrome around every screen: header, footer and
// the minimum-size notice.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// CompactHeight is the terminal height below which screens drop
	// decorative art.
	CompactHeight = 30
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("BrainCourse needs at least %d×%d\n\nyour terminal is %d×%d", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

// HeaderStats is the learner status shown on the right of the header.
// A zero Level hides it.
type HeaderStats struct {
	Level  int
	Streak int
}

// streakBadge renders the streak, dimmed when there is none.
func streakBadge(streak int) string {
	if streak == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("no streak")
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(streak >= 3).Render(fmt.Sprintf("🔥 %d", streak))
}

func (s HeaderStats) render() string {
	if s.Level <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.Info).Render(fmt.Sprintf("Lv %d", s.Level)) +
		"   " + streakBadge(s.Streak)
}

// chrome is the boxed style shared by header and footer.
func chrome(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader renders the brand on the left, the screen title centered and
// the learner status on the right.
func RenderHeader(title string, stats HeaderStats, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  BrainCourse")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := stats.render()

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	// Center the title in the whole bar, then give the rest to the right.
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)

	return chrome(width).Render(left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right)
}

// RenderFooter renders the key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  ")

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return chrome(width).Render("  " + strings.Join(parts, sep))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	padded := lipgloss.NewStyle().Width(width).Height(body).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, padded, footer)
}
