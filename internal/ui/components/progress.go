package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/ui/theme"
)

// ProgressBar is a horizontal bar for course completion, accuracy and
// similar ratios. The fill color follows theme.ScoreColor.
type ProgressBar struct {
	// Ratio is clamped to [0, 1] when rendered.
	Ratio float64
	Width int

	// Caption replaces the percentage on the right, e.g. "2/5 modules".
	Caption string
}

// NewProgressBar creates a bar of the given total width.
func NewProgressBar(ratio float64, width int) ProgressBar {
	return ProgressBar{Ratio: ratio, Width: width}
}

// Counted builds a bar for done out of total with a "done/total noun"
// caption.
func Counted(done, total int, noun string, width int) ProgressBar {
	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	return ProgressBar{Ratio: ratio, Width: width, Caption: fmt.Sprintf("%d/%d %s", done, total, noun)}
}

func (p ProgressBar) caption() string {
	if p.Caption != "" {
		return p.Caption
	}
	return fmt.Sprintf("%3d%%", int(p.clamped()*100))
}

func (p ProgressBar) clamped() float64 {
	return min(max(p.Ratio, 0), 1)
}

// View renders the bar followed by its caption.
func (p ProgressBar) View() string {
	caption := p.caption()
	barWidth := max(p.Width-lipgloss.Width(caption)-2, 4)

	filled := int(float64(barWidth) * p.clamped())
	fill := lipgloss.NewStyle().Foreground(theme.ScoreColor(p.clamped()))
	track := lipgloss.NewStyle().Foreground(theme.Border)

	return fill.Render(strings.Repeat("█", filled)) +
		track.Render(strings.Repeat("░", barWidth-filled)) +
		"  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
}
