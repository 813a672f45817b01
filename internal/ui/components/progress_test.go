package components

import (
	"strings"
	"testing"
)

func TestCountedCaption(t *testing.T) {
	bar := Counted(2, 5, "modules", 40)
	view := bar.View()
	if !strings.Contains(view, "2/5 modules") {
		t.Errorf("view missing caption: %q", view)
	}
	if got := strings.Count(view, "█"); got == 0 {
		t.Error("expected some filled cells")
	}
}

func TestProgressBarClamps(t *testing.T) {
	full := NewProgressBar(1.7, 30).View()
	if strings.Contains(full, "░") {
		t.Error("ratio above 1 should fill the whole bar")
	}
	if !strings.Contains(full, "100%") {
		t.Errorf("caption = %q, want 100%%", full)
	}

	empty := NewProgressBar(-1, 30).View()
	if strings.Contains(empty, "█") {
		t.Error("negative ratio should leave the bar empty")
	}
}
