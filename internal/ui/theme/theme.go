// Package theme holds the BrainCourse palette and the shared styles derived
// from it.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette: calm study-desk tones with bright highlights.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo, brand and selection
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F59E0B") // amber, streaks and achievements
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	Highlight = lipgloss.Color("#FACC15") // selected buttons
	Info      = lipgloss.Color("#22D3EE") // level and stats
)

var (
	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Score bands shared by accuracy, course completion and exam grades.
const (
	GoodScore = 0.8
	FairScore = 0.5
)

// ScoreColor maps a ratio in [0, 1] to green, yellow or teal. Low scores
// stay neutral rather than red so unfinished courses do not look failed.
func ScoreColor(ratio float64) color.Color {
	switch {
	case ratio >= GoodScore:
		return Success
	case ratio >= FairScore:
		return Warning
	default:
		return Secondary
	}
}

// GradeStyle colors an exam grade on the 0-10 scale. Grades below 5 are
// failing and shown in the error color.
func GradeStyle(grade float64) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if grade < FairScore*10 {
		return s.Foreground(Error)
	}
	return s.Foreground(ScoreColor(grade / 10))
}

// Centered renders s centered across width in fg.
func Centered(s string, width int, fg lipgloss.Style) string {
	return fg.Width(width).Align(lipgloss.Center).Render(s)
}
