package courses

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/router"
	quizscreen "github.com/abhisek/braincourse/internal/screens/quiz"
	"github.com/abhisek/braincourse/internal/tutor/tutortest"
)

const email = "ana@example.com"

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }

func batchMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	if cmd == nil {
		t.Fatalf("nil command, want %T", zero)
	}
	switch msg := cmd().(type) {
	case T:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(T); ok {
				return m
			}
		}
	}
	t.Fatalf("no %T produced", zero)
	return zero
}

func TestCreateCourse(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)
	f.QueueSyllabus("Cells", "Energy", "Genetics")

	s := New(f.Service, email)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No courses yet") {
		t.Error("expected empty state")
	}

	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if !s.creating {
		t.Fatal("expected input mode")
	}
	s.input.Model.SetValue("biology")
	_, cmd := s.Update(enter())
	if s.pending != "biology" {
		t.Fatalf("pending = %q", s.pending)
	}

	s.Update(batchMsg[courseCreatedMsg](t, cmd))
	if len(s.courses) != 1 || s.courses[0].Topic != "biology" {
		t.Fatalf("courses = %+v", s.courses)
	}
	if !strings.Contains(s.View(100, 30), "3 modules") {
		t.Errorf("view missing module count:\n%s", s.View(100, 30))
	}
}

func TestCreateCourseFailureShown(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)

	s := New(f.Service, email)
	s.Update(s.Init()())
	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	s.input.Model.SetValue("biology")
	_, cmd := s.Update(enter())
	s.Update(batchMsg[courseCreatedMsg](t, cmd))

	if len(s.courses) != 0 || !strings.Contains(s.errMsg, "Could not create") {
		t.Errorf("courses=%d errMsg=%q", len(s.courses), s.errMsg)
	}
}

func TestDetailOpensTheoryAndExam(t *testing.T) {
	f := tutortest.New(t)
	f.AddStudent(t, email)
	f.QueueSyllabus("Cells", "Energy", "Genetics")

	s := New(f.Service, email)
	s.Update(s.Init()())
	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	s.input.Model.SetValue("biology")
	_, cmd := s.Update(enter())
	s.Update(batchMsg[courseCreatedMsg](t, cmd))

	_, cmd = s.Update(enter())
	push := batchMsg[router.PushScreenMsg](t, cmd)
	d, ok := push.Screen.(*CourseDetailScreen)
	if !ok {
		t.Fatalf("pushed %T, want detail", push.Screen)
	}
	d.Update(d.Init()())
	if d.Title() != "biology" || len(d.rows) != 9 {
		t.Fatalf("title=%q rows=%d", d.Title(), len(d.rows))
	}

	// First row is the module: Enter starts its exam.
	_, cmd = d.Update(enter())
	push = batchMsg[router.PushScreenMsg](t, cmd)
	if _, ok := push.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("module row pushed %T, want quiz", push.Screen)
	}

	// Second row is a subtopic: Enter opens its theory.
	d.Update(down())
	_, cmd = d.Update(enter())
	push = batchMsg[router.PushScreenMsg](t, cmd)
	th, ok := push.Screen.(*TheoryScreen)
	if !ok {
		t.Fatalf("subtopic row pushed %T, want theory", push.Screen)
	}

	f.QueueText("Cells are the basic unit of life.")
	th.Update(th.Init()())
	if !strings.Contains(th.View(100, 30), "basic unit of life") {
		t.Errorf("theory view:\n%s", th.View(100, 30))
	}
}
