// Package profile defines the persisted user record and its role variants.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/braincourse/internal/course"
	"github.com/abhisek/braincourse/internal/progress"
)

// SchemaVersion is written into every saved record. Records with a
// different major version are refused on load.
const SchemaVersion = "v1.0.0"

var (
	// ErrNotFound is returned by Store.Load for an unknown id.
	ErrNotFound = errors.New("profile not found")

	ErrInvalidID = errors.New("profile id must be an email address")
)

// Store is the whole-record persistence contract for profiles.
type Store interface {
	Load(ctx context.Context, id string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

// Profile is one user's persisted record.
type Profile struct {
	ID            string
	Name          string
	Email         string
	Role          Role
	Progress      *progress.Progress
	Courses       []course.Course
	SchemaVersion string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StudentInfo is the onboarding data of a student.
type StudentInfo struct {
	StudyStage     StudyStage
	StudyYear      string
	Goal           Goal
	SelfAssessment SelfAssessment
}

// NormalizeID lower-cases and trims an email so it can be used as an id.
func NormalizeID(email string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(id, "@")
	if at <= 0 || at == len(id)-1 || strings.ContainsAny(id, " \t") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, email)
	}
	return id, nil
}

// NewStudent creates a student profile.
func NewStudent(email, name string, info StudentInfo, now time.Time) (*Profile, error) {
	s := &Student{
		StudyStage:     info.StudyStage,
		StudyYear:      info.StudyYear,
		Goal:           info.Goal,
		SelfAssessment: info.SelfAssessment,
	}
	s.normalize()
	return newProfile(email, name, s, now)
}

// NewTeacher creates a teacher profile.
func NewTeacher(email, name, career, institution string, now time.Time) (*Profile, error) {
	t := &Teacher{Career: career, Institution: institution}
	t.normalize()
	return newProfile(email, name, t, now)
}

func newProfile(email, name string, role Role, now time.Time) (*Profile, error) {
	id, err := NormalizeID(email)
	if err != nil {
		return nil, err
	}
	return &Profile{
		ID:            id,
		Name:          strings.TrimSpace(name),
		Email:         id,
		Role:          role,
		Progress:      progress.New(),
		Courses:       []course.Course{},
		SchemaVersion: SchemaVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Student returns the student role, or nil for a teacher.
func (p *Profile) Student() *Student {
	s, _ := p.Role.(*Student)
	return s
}

// Teacher returns the teacher role, or nil for a student.
func (p *Profile) Teacher() *Teacher {
	t, _ := p.Role.(*Teacher)
	return t
}

// PromptContext returns the learner context for generation prompts.
// Teachers have none.
func (p *Profile) PromptContext() *PromptContext {
	switch r := p.Role.(type) {
	case *Student:
		return &PromptContext{
			StudyStage:     r.StudyStage,
			StudyYear:      r.StudyYear,
			Goal:           r.Goal,
			SelfAssessment: r.SelfAssessment,
		}
	case *Teacher:
		return nil
	default:
		return nil
	}
}

// StudyStage returns the student's stage, or "" for teachers.
func (p *Profile) StudyStage() StudyStage {
	if s := p.Student(); s != nil {
		return s.StudyStage
	}
	return ""
}

// Course returns the course with id.
func (p *Profile) Course(id string) (*course.Course, error) {
	for i := range p.Courses {
		if p.Courses[i].ID == id {
			return &p.Courses[i], nil
		}
	}
	return nil, course.ErrCourseNotFound
}

// AddCourse appends c to the profile.
func (p *Profile) AddCourse(c course.Course) {
	p.Courses = append(p.Courses, c)
}

type profileJSON struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Role          roleJSON           `json:"role"`
	Progress      *progress.Progress `json:"progress"`
	Courses       []course.Course    `json:"courses"`
	SchemaVersion string             `json:"schema_version"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type roleJSON struct {
	Kind    RoleKind `json:"kind"`
	Student *Student `json:"student,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
}

func (p *Profile) MarshalJSON() ([]byte, error) {
	out := profileJSON{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		Progress:      p.Progress,
		Courses:       p.Courses,
		SchemaVersion: p.SchemaVersion,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	switch r := p.Role.(type) {
	case *Student:
		out.Role = roleJSON{Kind: KindStudent, Student: r}
	case *Teacher:
		out.Role = roleJSON{Kind: KindTeacher, Teacher: r}
	default:
		return nil, fmt.Errorf("profile %s has no role", p.ID)
	}
	return json.Marshal(out)
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var in profileJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Role.Kind {
	case KindStudent:
		s := in.Role.Student
		if s == nil {
			s = &Student{}
		}
		s.normalize()
		p.Role = s
	case KindTeacher:
		t := in.Role.Teacher
		if t == nil {
			t = &Teacher{}
		}
		t.normalize()
		p.Role = t
	default:
		return fmt.Errorf("unknown role kind %q", in.Role.Kind)
	}

	if in.Progress == nil {
		in.Progress = progress.New()
	}
	in.Progress.Normalize()
	if in.Courses == nil {
		in.Courses = []course.Course{}
	}

	p.ID = in.ID
	p.Name = in.Name
	p.Email = in.Email
	p.Progress = in.Progress
	p.Courses = in.Courses
	p.SchemaVersion = in.SchemaVersion
	p.CreatedAt = in.CreatedAt
	p.UpdatedAt = in.UpdatedAt
	return nil
}
