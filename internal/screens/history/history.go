package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/progress"
	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	quizscreen "github.com/abhisek/braincourse/internal/screens/quiz"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/layout"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

// Limit bounds how many activity records are listed.
const Limit = 50

type historyLoadedMsg struct {
	Records []progress.ActivityRecord
	Err     error
}

// HistoryScreen lists past quizzes and exams, most recent first. Expanding
// a record shows its missed questions; R replays them as a review.
type HistoryScreen struct {
	svc      *tutor.Service
	userID   string
	records  []progress.ActivityRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string

	now func() time.Time
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Reloader = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc *tutor.Service, userID string) *HistoryScreen {
	return &HistoryScreen{
		svc:      svc,
		userID:   userID,
		expanded: make(map[int]bool),
		now:      time.Now,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc, userID := s.svc, s.userID
	return func() tea.Msg {
		recs, err := svc.History(context.Background(), userID, Limit)
		return historyLoadedMsg{Records: recs, Err: err}
	}
}

// Reload picks up the record of a review that just finished.
func (s *HistoryScreen) Reload() tea.Cmd { return s.Init() }

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
	}
	if s.canReview() {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Review mistakes"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) canReview() bool {
	if s.selected >= len(s.records) {
		return false
	}
	rec := s.records[s.selected]
	return rec.Kind != progress.ActivityPlacement && len(rec.Failed()) > 0
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "r", "R":
			if !s.canReview() {
				return s, nil
			}
			svc, userID, index := s.svc, s.userID, s.selected
			topic := s.records[index].Topic
			next := quizscreen.New(svc, "Review · "+topic, func(ctx context.Context) (*tutor.Run, error) {
				return svc.BeginReview(ctx, userID, index)
			})
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start practicing!")
	}

	var b strings.Builder
	day := ""
	for i, rec := range s.records {
		if d := dayLabel(rec.Timestamp, s.now()); d != day {
			day = d
			b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Info).Bold(true).Render(day)) + "\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderRecord(rec, i == s.selected)))
		b.WriteString("\n")
		if s.expanded[i] {
			b.WriteString(renderMissed(rec, width))
		}
	}
	return b.String()
}

// dayLabel names the day of t relative to now.
func dayLabel(t, now time.Time) string {
	t, now = t.Local(), now.Local()
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	days := int(time.Date(y2, m2, d2, 0, 0, 0, 0, time.Local).Sub(time.Date(y1, m1, d1, 0, 0, 0, 0, time.Local)).Hours() / 24)
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return t.Format("Mon, Jan 02 2006")
	}
}

// renderRecord is one line of the list: time, kind, topic and the score
// colored by how well it went.
func renderRecord(rec progress.ActivityRecord, selected bool) string {
	ratio := 0.0
	if rec.Total > 0 {
		ratio = float64(rec.Correct) / float64(rec.Total)
	}

	marker, text := "  ", lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		marker, text = "▸ ", text.Foreground(theme.Primary).Bold(true)
	}
	score := lipgloss.NewStyle().Foreground(theme.ScoreColor(ratio)).
		Render(fmt.Sprintf("%5s %4.0f%%", rec.Result(), ratio*100))

	line := text.Render(fmt.Sprintf("%s%s  %-15s %-24s ", marker, rec.Timestamp.Local().Format("15:04"),
		rec.Kind.DisplayName(), truncate(rec.Topic, 24))) + score
	if n := len(rec.Failed()); n > 0 {
		line += lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d missed", n))
	}
	return line
}

func renderMissed(rec progress.ActivityRecord, width int) string {
	failed := rec.Failed()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if len(failed) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Italic(true).Render("    No mistakes in this one")) + "\n"
	}

	var b strings.Builder
	for _, d := range failed {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render("    "+truncate(d.Question, 70))))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("      you: "+d.UserAnswer)+
				lipgloss.NewStyle().Foreground(theme.Success).Render("   answer: "+d.CorrectAnswer)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
