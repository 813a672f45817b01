// Package courses lists a learner's generated courses and creates new ones.
package courses

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/braincourse/internal/course"
	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/components"
	"github.com/abhisek/braincourse/internal/ui/layout"
	"github.com/abhisek/braincourse/internal/ui/theme"
)

type coursesLoadedMsg struct {
	Courses []course.Course
	Err     error
}

type courseCreatedMsg struct {
	Course *course.Course
	Err    error
}

type tickMsg time.Time

// CoursesScreen lists courses with their completion and average grade.
type CoursesScreen struct {
	svc      *tutor.Service
	userID   string
	courses  []course.Course
	selected int
	loaded   bool
	errMsg   string

	creating bool
	input    components.TextInput
	pending  string
	frame    int
}

var _ screen.Screen = (*CoursesScreen)(nil)
var _ screen.KeyHintProvider = (*CoursesScreen)(nil)
var _ screen.Reloader = (*CoursesScreen)(nil)

// New creates a CoursesScreen for userID.
func New(svc *tutor.Service, userID string) *CoursesScreen {
	return &CoursesScreen{svc: svc, userID: userID}
}

func (s *CoursesScreen) Init() tea.Cmd {
	return s.load()
}

// Reload refreshes progress bars and grades after an exam.
func (s *CoursesScreen) Reload() tea.Cmd { return s.load() }

func (s *CoursesScreen) load() tea.Cmd {
	svc, userID := s.svc, s.userID
	return func() tea.Msg {
		p, err := svc.Profile(context.Background(), userID)
		if err != nil {
			return coursesLoadedMsg{Err: err}
		}
		return coursesLoadedMsg{Courses: p.Courses}
	}
}

func (s *CoursesScreen) Title() string {
	return "Courses"
}

func (s *CoursesScreen) KeyHints() []layout.KeyHint {
	if s.creating {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Create"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "N", Description: "New course"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CoursesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.courses = msg.Courses
		s.selected = min(s.selected, max(len(s.courses)-1, 0))
		return s, nil

	case courseCreatedMsg:
		s.pending = ""
		if msg.Err != nil {
			s.errMsg = "Could not create the course: " + msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.courses = append(s.courses, *msg.Course)
		s.selected = len(s.courses) - 1
		return s, nil

	case tickMsg:
		if s.pending != "" {
			s.frame++
			return s, tick()
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.creating {
			return s.handleInputKey(msg)
		}
		if s.pending != "" {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.courses)-1 {
				s.selected++
			}
		case "n", "N":
			s.creating = true
			s.errMsg = ""
			s.input = components.NewTextInput("What do you want to learn?", 80)
			return s, s.input.Init()
		case "enter":
			if s.selected < len(s.courses) {
				c := s.courses[s.selected]
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: newDetail(s.svc, s.userID, c.ID)}
				}
			}
		}
		return s, nil
	}

	if s.creating {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CoursesScreen) handleInputKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.creating = false
		return s, nil
	case "enter":
		topic := s.input.Value()
		if topic == "" {
			return s, nil
		}
		s.creating = false
		s.pending = topic
		svc, userID := s.svc, s.userID
		return s, tea.Batch(tick(), func() tea.Msg {
			c, err := svc.CreateCourse(context.Background(), userID, topic)
			return courseCreatedMsg{Course: c, Err: err}
		})
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *CoursesScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	switch {
	case !s.loaded:
		b.WriteString(theme.Centered("Loading courses...", width, dim))
		return b.String()
	case s.creating:
		b.WriteString(theme.Centered("Brainy will design a course of a few modules for you.", width, dim))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
		b.WriteString("\n")
		return b.String()
	case s.pending != "":
		frames := []string{"◐", "◓", "◑", "◒"}
		b.WriteString(theme.Centered(fmt.Sprintf("%s  Designing a course on %s...", frames[s.frame%len(frames)], s.pending), width, dim))
		return b.String()
	}

	if len(s.courses) == 0 {
		b.WriteString(theme.Centered("No courses yet. Press N to create one!", width, dim.Italic(true)))
		b.WriteString("\n")
	}

	cw := components.ContentWidth(width)
	for i, c := range s.courses {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderCourseRow(c, i == s.selected, cw)))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Centered(s.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error)))
	}
	return b.String()
}

func renderCourseRow(c course.Course, selected bool, cw int) string {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	prefix := "  "
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
		prefix = "▸ "
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	grade := dim.Render("no grades yet")
	if avg := c.AverageGrade(); avg != nil {
		g, _ := avg.Float64()
		grade = dim.Render("avg ") + theme.GradeStyle(g).Render(avg.StringFixed(1))
	}
	title := style.Render(prefix+c.Topic) + dim.Render("   ") + grade

	bar := components.Counted(c.CompletedModules(), len(c.Modules), "modules", cw-2)
	return title + "\n  " + bar.View()
}

func tick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}
