package tutor

import (
	"context"
	"strings"

	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/store"
)

// ReportInput is a teacher's correction of an AI answer.
type ReportInput struct {
	Question      string
	AIAnswer      string
	TeacherAnswer string
	Justification string
}

// FileReport stores a correction filed by a teacher.
func (s *Service) FileReport(ctx context.Context, teacherID string, in ReportInput) (*store.ErrorReport, error) {
	if s.reports == nil {
		return nil, ErrNoReportStore
	}
	t, err := s.teacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.TrimSpace(in.Question) == "":
		return nil, &quiz.ValidationError{Field: "question", Message: "question is empty"}
	case strings.TrimSpace(in.TeacherAnswer) == "":
		return nil, &quiz.ValidationError{Field: "teacher_answer", Message: "corrected answer is empty"}
	}

	rep := &store.ErrorReport{
		TeacherID:     t.ID,
		Question:      strings.TrimSpace(in.Question),
		AIAnswer:      strings.TrimSpace(in.AIAnswer),
		TeacherAnswer: strings.TrimSpace(in.TeacherAnswer),
		Justification: strings.TrimSpace(in.Justification),
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}
	s.log.Info("error report filed", "teacher", t.ID, "report", rep.ID)
	return rep, nil
}

// Reports lists error reports matching f.
func (s *Service) Reports(ctx context.Context, f store.ReportFilter) ([]store.ErrorReport, error) {
	if s.reports == nil {
		return nil, ErrNoReportStore
	}
	return s.reports.List(ctx, f)
}

// SetReportStatus moves a report to status.
func (s *Service) SetReportStatus(ctx context.Context, id string, status store.ReportStatus) error {
	if s.reports == nil {
		return ErrNoReportStore
	}
	if !status.Valid() {
		return &quiz.ValidationError{Field: "status", Message: "unknown status " + string(status)}
	}
	return s.reports.SetStatus(ctx, id, status)
}
