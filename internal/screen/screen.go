// Package screen declares the contract between the router and the
// individual TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns a stack of them and only
// the top one receives messages.
type Screen interface {
	// Init is called once when the screen is pushed.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area between header and footer.
	View(width, height int) string

	// Title is shown in the header; "" leaves it blank.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Reloader is implemented by screens that show profile data which a screen
// above them may have changed, such as a grade after a module exam. The
// router calls Reload when the screen becomes the top of the stack again.
type Reloader interface {
	Reload() tea.Cmd
}
