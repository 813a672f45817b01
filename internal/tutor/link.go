package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/braincourse/internal/profile"
)

// linkPair loads both sides of a teacher/student link. A missing student is
// reported the way the link rules phrase it.
func (s *Service) linkPair(ctx context.Context, teacherID, studentID string) (teacher, student *profile.Profile, err error) {
	teacher, err = s.Profile(ctx, teacherID)
	if err != nil {
		return nil, nil, err
	}
	student, err = s.Profile(ctx, studentID)
	if errors.Is(err, profile.ErrNotFound) {
		return nil, nil, &profile.LinkError{Op: "link", Reason: "no student found with that email"}
	}
	if err != nil {
		return nil, nil, err
	}
	return teacher, student, nil
}

// saveBoth writes both records. The student goes first since it carries the
// notification of the change.
func (s *Service) saveBoth(ctx context.Context, teacher, student *profile.Profile) error {
	if err := s.Save(ctx, student); err != nil {
		return err
	}
	return s.Save(ctx, teacher)
}

func (s *Service) linkOp(ctx context.Context, op, teacherID, studentID string, apply func(t, st *profile.Profile) error) error {
	teacher, student, err := s.linkPair(ctx, teacherID, studentID)
	if err != nil {
		return err
	}
	if err := apply(teacher, student); err != nil {
		return err
	}
	if err := s.saveBoth(ctx, teacher, student); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("link updated", "op", op, "teacher", teacher.ID, "student", student.ID)
	return nil
}

// Invite records a teacher's invitation on a student.
func (s *Service) Invite(ctx context.Context, teacherID, studentID string) error {
	return s.linkOp(ctx, "invite", teacherID, studentID, func(t, st *profile.Profile) error {
		return profile.Invite(t, st, s.now())
	})
}

// RespondToInvitation accepts or declines a teacher's invitation.
func (s *Service) RespondToInvitation(ctx context.Context, studentID, teacherID string, accept bool) error {
	return s.linkOp(ctx, "respond to invitation", teacherID, studentID, func(t, st *profile.Profile) error {
		return profile.RespondToInvitation(st, t, accept, s.now())
	})
}

// RequestLink records a student's link request on a teacher.
func (s *Service) RequestLink(ctx context.Context, studentID, teacherID string) error {
	return s.linkOp(ctx, "request link", teacherID, studentID, func(t, st *profile.Profile) error {
		return profile.RequestLink(st, t)
	})
}

// RespondToRequest accepts or rejects a student's pending link request.
func (s *Service) RespondToRequest(ctx context.Context, teacherID, studentID string, accept bool) error {
	return s.linkOp(ctx, "respond to request", teacherID, studentID, func(t, st *profile.Profile) error {
		return profile.RespondToRequest(t, st, accept, s.now())
	})
}

// Unlink removes a teacher/student link.
func (s *Service) Unlink(ctx context.Context, teacherID, studentID string) error {
	return s.linkOp(ctx, "unlink", teacherID, studentID, func(t, st *profile.Profile) error {
		return profile.Unlink(t, st, s.now())
	})
}

// Students loads the linked students of a teacher. Records that can no
// longer be loaded are skipped.
func (s *Service) Students(ctx context.Context, teacherID string) ([]*profile.Profile, error) {
	t, err := s.teacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	out := make([]*profile.Profile, 0, len(t.Teacher().Students))
	for _, id := range t.Teacher().Students {
		st, err := s.profiles.Load(ctx, id)
		if err != nil {
			s.log.Warn("linked student not loaded", "teacher", t.ID, "student", id, "err", err)
			continue
		}
		out = append(out, st)
	}
	return out, nil
}
