package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. The correct answer is only
// known after Reveal, so the component never leaks it while the learner
// is choosing.
type MultiChoice struct {
	Question  string
	Options   []string
	Selected  int
	Submitted bool
	Chosen    string

	correct  string
	revealed bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
	}
}

// Update handles keyboard navigation and selection. Digits 1-9 pick an
// option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.submit()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.submit()
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) submit() {
	if len(m.Options) == 0 {
		return
	}
	m.Submitted = true
	m.Chosen = m.Options[m.Selected]
}

// Reveal marks correct as the right answer for rendering.
func (m *MultiChoice) Reveal(correct string) {
	m.correct = correct
	m.revealed = true
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.revealed && opt == m.correct:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Submitted && opt == m.Chosen:
			style = style.Foreground(theme.Error).Bold(true)
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
