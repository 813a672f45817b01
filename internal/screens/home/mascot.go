package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/ui/theme"
)

// MascotVariant selects which Brainy art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default indigo
	MascotCelebrating                      // Yellow, star eyes: hot streak
	MascotAlert                            // Amber, exclamation: no LLM configured
)

const mascotIdle = `╭─────╮
│ ◉ ◉ │
│  ‿  │
╰┬───┬╯
 ╘═══╛`

const mascotCelebrating = `╭─────╮
│ ★ ★ │
│  ▽  │
╰┬───┬╯
\╘═══╛/`

const mascotAlert = `╭─────╮
│ ◉ ◉ │ !
│  ︿  │
╰┬───┬╯
 ╘═══╛`

// RenderMascot returns the Brainy art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Highlight
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
