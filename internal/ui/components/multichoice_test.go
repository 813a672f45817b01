package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice("2+2?", []string{"3", "4", "5"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !m.Submitted || m.Chosen != "4" {
		t.Errorf("Submitted=%v Chosen=%q, want true/4", m.Submitted, m.Chosen)
	}
}

func TestMultiChoiceDigitPicks(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b", "c"})
	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if m.Chosen != "c" {
		t.Errorf("Chosen = %q, want c", m.Chosen)
	}
}

func TestMultiChoiceDigitOutOfRange(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b"})
	m, _ = m.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if m.Submitted {
		t.Error("digit beyond options must not submit")
	}
}

func TestMultiChoiceIgnoresKeysAfterSubmit(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 || m.Chosen != "a" {
		t.Errorf("selection moved after submit: %d %q", m.Selected, m.Chosen)
	}
}

func TestMultiChoiceViewLabels(t *testing.T) {
	m := NewMultiChoice("Pick", []string{"x", "y", "z", "w", "v"})
	view := m.View()
	for _, label := range []string{"A)", "E)"} {
		if !strings.Contains(view, label) {
			t.Errorf("view missing %s:\n%s", label, view)
		}
	}
}
