package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd

	// Hint is rendered dimmed after the label, e.g. why an item is disabled.
	Hint     string
	Disabled bool
}

// Menu is a vertical list of actions. Navigation wraps around and skips
// disabled items; digits 1-9 jump straight to an item and run it.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Init() tea.Cmd { return nil }

// move steps the selection by dir (+1 or -1) to the next enabled item.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// run invokes the action of item i when it is enabled.
func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	it := m.Items[i]
	if it.Disabled || it.Action == nil {
		return nil
	}
	return it.Action()
}

// Update handles arrow/vim navigation, Enter and digit shortcuts.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter":
		return m, m.run(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.run(i)
			}
		}
	}
	return m, nil
}

// View renders the items, numbered when there are at most nine.
func (m Menu) View() string {
	numbered := len(m.Items) <= 9
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	var b strings.Builder
	for i, it := range m.Items {
		label := it.Label
		if numbered {
			label = fmt.Sprintf("%d. %s", i+1, it.Label)
		}

		var style lipgloss.Style
		prefix := "    "
		switch {
		case it.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.Border)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			prefix = "  ▸ "
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}

		b.WriteString(style.Render(prefix + label))
		if it.Hint != "" {
			b.WriteString("  " + hint.Render(it.Hint))
		}
		b.WriteString("\n")
	}
	return b.String()
}
