package courses

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/course"
	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	quizscreen "github.com/abhisek/braincourse/internal/screens/quiz"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/layout"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

type courseLoadedMsg struct {
	Course *course.Course
	Err    error
}

// row is one selectable line: a module header or one of its subtopics.
type row struct {
	module   int
	subtopic int // -1 for the module header
}

// CourseDetailScreen shows the modules of one course. Subtopics open their
// theory; a module row starts its exam.
type CourseDetailScreen struct {
	svc      *tutor.Service
	userID   string
	courseID string
	course   *course.Course
	rows     []row
	selected int
	errMsg   string
}

var _ screen.Screen = (*CourseDetailScreen)(nil)
var _ screen.KeyHintProvider = (*CourseDetailScreen)(nil)
var _ screen.Reloader = (*CourseDetailScreen)(nil)

func newDetail(svc *tutor.Service, userID, courseID string) *CourseDetailScreen {
	return &CourseDetailScreen{svc: svc, userID: userID, courseID: courseID}
}

func (d *CourseDetailScreen) Init() tea.Cmd {
	svc, userID, courseID := d.svc, d.userID, d.courseID
	return func() tea.Msg {
		p, err := svc.Profile(context.Background(), userID)
		if err != nil {
			return courseLoadedMsg{Err: err}
		}
		c, err := p.Course(courseID)
		return courseLoadedMsg{Course: c, Err: err}
	}
}

func (d *CourseDetailScreen) Reload() tea.Cmd { return d.Init() }

func (d *CourseDetailScreen) Title() string {
	if d.course == nil {
		return "Course"
	}
	return d.course.Topic
}

func (d *CourseDetailScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}}
	if r, ok := d.current(); ok && r.subtopic >= 0 {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Read theory"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Take exam"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (d *CourseDetailScreen) current() (row, bool) {
	if d.selected < 0 || d.selected >= len(d.rows) {
		return row{}, false
	}
	return d.rows[d.selected], true
}

func (d *CourseDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case courseLoadedMsg:
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.course = msg.Course
		d.rows = d.rows[:0]
		for mi, m := range d.course.Modules {
			d.rows = append(d.rows, row{module: mi, subtopic: -1})
			for si := range m.Subtopics {
				d.rows = append(d.rows, row{module: mi, subtopic: si})
			}
		}
		d.selected = min(d.selected, max(len(d.rows)-1, 0))
		return d, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if d.selected > 0 {
				d.selected--
			}
		case "down", "j":
			if d.selected < len(d.rows)-1 {
				d.selected++
			}
		case "enter":
			return d, d.open()
		}
	}
	return d, nil
}

func (d *CourseDetailScreen) open() tea.Cmd {
	r, ok := d.current()
	if !ok || d.course == nil {
		return nil
	}
	m := d.course.Modules[r.module]
	svc, userID, courseID := d.svc, d.userID, d.course.ID

	var next screen.Screen
	if r.subtopic >= 0 {
		next = newTheory(svc, userID, courseID, m.ID, m.Subtopics[r.subtopic])
	} else {
		next = quizscreen.New(svc, "Exam · "+m.Title, func(ctx context.Context) (*tutor.Run, error) {
			return svc.BeginExam(ctx, userID, courseID, m.ID)
		})
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (d *CourseDetailScreen) View(width, height int) string {
	if d.errMsg != "" {
		return theme.Centered("\n\nError: "+d.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error))
	}
	if d.course == nil {
		return theme.Centered("\n\nLoading course...", width, lipgloss.NewStyle().Foreground(theme.TextDim))
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("  %s", d.course.Topic)))
	b.WriteString(dim.Render(fmt.Sprintf("   %.0f%% complete", d.course.Progress()*100)))
	b.WriteString("\n\n")

	for i, r := range d.rows {
		m := d.course.Modules[r.module]
		selected := i == d.selected
		prefix := "  "
		if selected {
			prefix = "▸ "
		}

		var line string
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if r.subtopic < 0 {
			status := "○"
			grade := ""
			if m.Completed {
				status = "●"
				style = style.Foreground(theme.Success)
			}
			if m.ExamGrade != nil {
				g, _ := m.ExamGrade.Float64()
				grade = dim.Render("   grade ") + theme.GradeStyle(g).Render(m.ExamGrade.StringFixed(1))
			}
			line = style.Bold(true).Render(fmt.Sprintf("%s%s %d. %s", prefix, status, r.module+1, m.Title)) + grade
		} else {
			sub := m.Subtopics[r.subtopic]
			mark := ""
			if _, ok := m.CachedTheory(sub); ok {
				mark = dim.Render("  ✓ read")
			}
			if !selected {
				style = dim
			}
			line = style.Render(fmt.Sprintf("%s     %s", prefix, sub)) + mark
		}
		if selected {
			line = lipgloss.NewStyle().Foreground(theme.Primary).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
