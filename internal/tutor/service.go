// Package tutor binds quiz sessions, courses and teacher links to the
// profile store: load, mutate in memory, save the whole record.
//
// Callers serialize access per user. The service keeps no per-user state of
// its own beyond the Run handed back to the caller.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/profile"
	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/store"
)

var (
	ErrProfileExists   = errors.New("profile already exists")
	ErrNotStudent      = errors.New("profile is not a student")
	ErrNotTeacher      = errors.New("profile is not a teacher")
	ErrUnknownSubtopic = errors.New("subtopic not in module")
	ErrNoReportStore   = errors.New("error reports are not configured")
)

// SessionLog records finished sessions for history queries.
type SessionLog interface {
	AppendSession(ctx context.Context, data store.SessionEventData) error
}

// ReportStore persists teacher error reports.
type ReportStore interface {
	Create(ctx context.Context, rep *store.ErrorReport) error
	List(ctx context.Context, f store.ReportFilter) ([]store.ErrorReport, error)
	SetStatus(ctx context.Context, id string, status store.ReportStatus) error
}

// Options wires a Service. Profiles and Generator are required.
type Options struct {
	Profiles  profile.Store
	Generator content.Generator

	// Orchestrator defaults to quiz.New(Generator).
	Orchestrator *quiz.Orchestrator

	Sessions SessionLog
	Reports  ReportStore

	// PracticeLengths defaults to quiz.DefaultLengths.
	PracticeLengths []int

	Logger *slog.Logger
	Clock  func() time.Time
}

// Service is the application layer used by the CLI and the TUI.
type Service struct {
	profiles profile.Store
	gen      content.Generator
	quiz     *quiz.Orchestrator
	sessions SessionLog
	reports  ReportStore
	lengths  []int
	log      *slog.Logger
	now      func() time.Time
}

// New creates a Service.
func New(opts Options) *Service {
	s := &Service{
		profiles: opts.Profiles,
		gen:      opts.Generator,
		quiz:     opts.Orchestrator,
		sessions: opts.Sessions,
		reports:  opts.Reports,
		lengths:  opts.PracticeLengths,
		log:      opts.Logger,
		now:      opts.Clock,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.quiz == nil {
		s.quiz = quiz.New(s.gen, quiz.WithClock(s.now))
	}
	if len(s.lengths) == 0 {
		s.lengths = quiz.DefaultLengths
	}
	return s
}

// PracticeLengths returns the offered practice quiz lengths.
func (s *Service) PracticeLengths() []int { return s.lengths }

// Profile loads a profile by email.
func (s *Service) Profile(ctx context.Context, userID string) (*profile.Profile, error) {
	id, err := profile.NormalizeID(userID)
	if err != nil {
		return nil, err
	}
	return s.profiles.Load(ctx, id)
}

// Register saves a new profile, refusing to overwrite an existing one.
func (s *Service) Register(ctx context.Context, p *profile.Profile) error {
	_, err := s.profiles.Load(ctx, p.ID)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrProfileExists, p.ID)
	case !errors.Is(err, profile.ErrNotFound):
		return err
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		return err
	}
	s.log.Info("profile registered", "user", p.ID, "role", p.Role.Kind())
	return nil
}

// Save writes the whole profile record.
func (s *Service) Save(ctx context.Context, p *profile.Profile) error {
	if err := s.profiles.Save(ctx, p); err != nil {
		s.log.Warn("profile save failed", "user", p.ID, "err", err)
		return err
	}
	return nil
}

func (s *Service) student(ctx context.Context, userID string) (*profile.Profile, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Student() == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotStudent, p.ID)
	}
	return p, nil
}

func (s *Service) teacher(ctx context.Context, userID string) (*profile.Profile, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Teacher() == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotTeacher, p.ID)
	}
	return p, nil
}
