package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/course"
	"github.com/abhisek/braincourse/internal/profile"
	"github.com/abhisek/braincourse/internal/progress"
	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/store"
)

// PlacementTopic labels placement quizzes in the activity log.
const PlacementTopic = "Placement"

// Run is one active session of one learner.
type Run struct {
	Profile *profile.Profile
	Session *quiz.Session

	// Summary is set by the first successful Complete inside Finish.
	Summary *quiz.Summary

	logged bool
	saved  bool
}

// Saved reports whether Finish has persisted the run.
func (r *Run) Saved() bool { return r.saved }

// BeginPractice starts a practice quiz of one of the offered lengths.
func (s *Service) BeginPractice(ctx context.Context, userID, topic string, count int) (*Run, error) {
	setup := quiz.NewSetup(s.lengths...)
	if err := setup.ChooseTopic(topic); err != nil {
		return nil, err
	}
	if err := setup.ChooseLength(count); err != nil {
		return nil, err
	}
	params, err := setup.Params()
	if err != nil {
		return nil, err
	}

	p, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, p, params)
}

// BeginExam starts the fixed-length exam of a course module.
func (s *Service) BeginExam(ctx context.Context, userID, courseID, moduleID string) (*Run, error) {
	p, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := p.Course(courseID)
	if err != nil {
		return nil, err
	}
	m, err := c.Module(moduleID)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, p, quiz.Params{
		Kind:      quiz.KindExam,
		Topic:     m.Title,
		Subtopics: m.Subtopics,
		Count:     quiz.ExamLength,
		CourseID:  c.ID,
		ModuleID:  m.ID,
	})
}

// BeginPlacement starts a placement quiz matched to the study stage. Its
// score sets the starting level, so it is only offered before the learner's
// first quiz.
func (s *Service) BeginPlacement(ctx context.Context, userID string) (*Run, error) {
	p, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n := len(p.Progress.ActivityLog); n > 0 {
		return nil, &quiz.ValidationError{
			Field:   "placement",
			Message: fmt.Sprintf("placement is only offered before the first quiz, history has %d entries", n),
		}
	}
	return s.start(ctx, p, quiz.Params{
		Kind:  quiz.KindPlacement,
		Topic: PlacementTopic,
		Count: quiz.PlacementLength,
	})
}

// BeginReview replays the failed questions of the activity at index in the
// activity log (0 is the most recent).
func (s *Service) BeginReview(ctx context.Context, userID string, index int) (*Run, error) {
	p, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}
	log := p.Progress.ActivityLog
	if index < 0 || index >= len(log) {
		return nil, &quiz.ValidationError{
			Field:   "activity",
			Message: fmt.Sprintf("index %d out of range, history has %d entries", index, len(log)),
		}
	}
	sess, err := s.quiz.StartReview(log[index])
	if err != nil {
		return nil, err
	}
	return &Run{Profile: p, Session: sess}, nil
}

func (s *Service) start(ctx context.Context, p *profile.Profile, params quiz.Params) (*Run, error) {
	params.Level = p.Progress.Level
	params.Profile = p.PromptContext()

	out := <-s.quiz.StartAsync(ctx, params)
	if out.Err != nil {
		s.log.Warn("session start failed", "user", p.ID, "kind", params.Kind, "topic", params.Topic, "err", out.Err)
		return nil, out.Err
	}
	s.log.Debug("session started", "user", p.ID, "session", out.Value.ID, "kind", params.Kind, "items", len(out.Value.Items))
	return &Run{Profile: p, Session: out.Value}, nil
}

// Answer submits the learner's choice for the current item.
func (s *Service) Answer(run *Run, chosen string) (quiz.AnswerResult, error) {
	return s.quiz.Submit(run.Session, run.Profile.Progress, chosen)
}

// Finish completes the session and saves the profile as one write. It
// prepends the activity record and grades the exam module on the first
// call only. When the save fails the run keeps its summary and Finish can
// be called again to retry the write.
func (s *Service) Finish(ctx context.Context, run *Run) (*quiz.Summary, error) {
	if run.saved {
		return run.Summary, nil
	}

	if run.Summary == nil {
		var graded *course.Course
		if run.Session.Kind == quiz.KindExam {
			c, err := run.Profile.Course(run.Session.CourseID)
			if err != nil {
				return nil, err
			}
			if _, err := c.Module(run.Session.ModuleID); err != nil {
				return nil, err
			}
			graded = c
		}

		sum, err := s.quiz.Complete(run.Session, run.Profile.Progress)
		if err != nil {
			return nil, err
		}
		run.Profile.Progress.PrependActivity(sum.Activity)
		if graded != nil {
			// Module existence was checked above.
			_ = graded.CompleteModule(run.Session.ModuleID, course.Grade(sum.Correct, sum.Total))
		}
		run.Summary = sum
	}

	if !run.logged {
		s.logSession(ctx, run)
	}

	if err := s.Save(ctx, run.Profile); err != nil {
		return run.Summary, err
	}
	run.saved = true

	s.log.Info("session finished",
		"user", run.Profile.ID,
		"session", run.Session.ID,
		"kind", run.Session.Kind,
		"score", run.Summary.Activity.Result(),
		"level", run.Profile.Progress.Level,
		"unlocked", run.Summary.Unlocked,
	)
	return run.Summary, nil
}

// logSession appends the session event. A failure is logged and does not
// stop the profile save.
func (s *Service) logSession(ctx context.Context, run *Run) {
	if s.sessions == nil {
		run.logged = true
		return
	}
	sum := run.Summary
	err := s.sessions.AppendSession(ctx, store.SessionEventData{
		ProfileID: run.Profile.ID,
		SessionID: run.Session.ID,
		Kind:      string(run.Session.Kind),
		Topic:     run.Session.Topic,
		Correct:   sum.Correct,
		Total:     sum.Total,
		LeveledUp: sum.LeveledUp,
		Unlocked:  idStrings(sum.Unlocked),
	})
	if err != nil {
		s.log.Warn("session event not recorded", "session", run.Session.ID, "err", err)
		return
	}
	run.logged = true
}

func idStrings(ids []achievements.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// IsRetryable reports whether err leaves a run or request in a state where
// the same call can simply be repeated.
func IsRetryable(err error) bool {
	var (
		ioe *store.IOError
		ge  *content.GenerationError
	)
	return errors.As(err, &ioe) || errors.As(err, &ge)
}

// History returns the activity log of a learner, most recent first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]progress.ActivityRecord, error) {
	p, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}
	log := p.Progress.ActivityLog
	if limit > 0 && len(log) > limit {
		log = log[:limit]
	}
	return log, nil
}
