// Package course models generated courses: a topic split into modules, each
// made of subtopics with cached theory and an optional exam grade.
package course

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrModuleNotFound = errors.New("module not found")
)

// MaxGrade is the top of the grading scale.
var MaxGrade = decimal.NewFromInt(10)

// Outline is one module of a generated syllabus.
type Outline struct {
	Title     string   `json:"title"`
	Subtopics []string `json:"subtopics"`
}

// Course is a generated course owned by one profile.
type Course struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	Modules   []Module  `json:"modules"`
}

// Module is one unit of a course.
type Module struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Subtopics []string          `json:"subtopics"`
	Completed bool              `json:"completed"`
	ExamGrade *decimal.Decimal  `json:"exam_grade,omitempty"`
	Theory    map[string]string `json:"theory,omitempty"`
}

// New builds a course from a syllabus outline, assigning fresh ids.
func New(topic string, outline []Outline, now time.Time) Course {
	c := Course{
		ID:        "course_" + shortID(8),
		Topic:     topic,
		CreatedAt: now,
		Modules:   make([]Module, 0, len(outline)),
	}
	for _, o := range outline {
		title := strings.TrimSpace(o.Title)
		if title == "" {
			title = "Untitled module"
		}
		subtopics := lo.Uniq(lo.Compact(lo.Map(o.Subtopics, func(s string, _ int) string {
			return strings.TrimSpace(s)
		})))
		c.Modules = append(c.Modules, Module{
			ID:        "mod_" + shortID(6),
			Title:     title,
			Subtopics: subtopics,
			Theory:    map[string]string{},
		})
	}
	return c
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// Grade converts an exam score to the 0-10 scale, rounded to 2 places.
func Grade(correct, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(correct)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(MaxGrade).
		Round(2)
}

// Module returns the module with id.
func (c *Course) Module(id string) (*Module, error) {
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return &c.Modules[i], nil
		}
	}
	return nil, ErrModuleNotFound
}

// CompleteModule marks a module completed with its latest exam grade.
func (c *Course) CompleteModule(id string, grade decimal.Decimal) error {
	m, err := c.Module(id)
	if err != nil {
		return err
	}
	g := grade.Round(2)
	m.Completed = true
	m.ExamGrade = &g
	return nil
}

// CompletedModules counts modules with a passed-through exam.
func (c *Course) CompletedModules() int {
	return lo.CountBy(c.Modules, func(m Module) bool { return m.Completed })
}

// Progress is the fraction of completed modules in [0, 1].
func (c *Course) Progress() float64 {
	if len(c.Modules) == 0 {
		return 0
	}
	return float64(c.CompletedModules()) / float64(len(c.Modules))
}

// AverageGrade is the mean grade of completed, graded modules, or nil when
// there are none yet.
func (c *Course) AverageGrade() *decimal.Decimal {
	grades := lo.FilterMap(c.Modules, func(m Module, _ int) (decimal.Decimal, bool) {
		if !m.Completed || m.ExamGrade == nil {
			return decimal.Decimal{}, false
		}
		return *m.ExamGrade, true
	})
	if len(grades) == 0 {
		return nil
	}
	avg := decimal.Avg(grades[0], grades[1:]...).Round(2)
	return &avg
}

// HasSubtopic reports whether s belongs to the module.
func (m *Module) HasSubtopic(s string) bool {
	return lo.Contains(m.Subtopics, s)
}

// CachedTheory returns previously generated theory for a subtopic.
func (m *Module) CachedTheory(subtopic string) (string, bool) {
	text, ok := m.Theory[subtopic]
	return text, ok && text != ""
}

// StoreTheory caches generated theory for a subtopic.
func (m *Module) StoreTheory(subtopic, text string) {
	if m.Theory == nil {
		m.Theory = map[string]string{}
	}
	m.Theory[subtopic] = text
}
