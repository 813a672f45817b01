package profile

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Notification is a message left on a student's record.
type Notification struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
	Read    bool      `json:"read"`
}

// Notify prepends a notification.
func (s *Student) Notify(msg string, at time.Time) {
	s.Notifications = append([]Notification{{Message: msg, At: at}}, s.Notifications...)
}

// Unread counts unread notifications.
func (s *Student) Unread() int {
	return lo.CountBy(s.Notifications, func(n Notification) bool { return !n.Read })
}

// MarkAllRead marks every notification read.
func (s *Student) MarkAllRead() {
	for i := range s.Notifications {
		s.Notifications[i].Read = true
	}
}

// LinkError explains why a teacher/student link operation was refused.
type LinkError struct {
	Op     string
	Reason string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func roles(op string, teacher, student *Profile) (*Teacher, *Student, error) {
	t := teacher.Teacher()
	if t == nil {
		return nil, nil, &LinkError{Op: op, Reason: teacher.ID + " is not a teacher"}
	}
	s := student.Student()
	if s == nil {
		return nil, nil, &LinkError{Op: op, Reason: "no student found with that email"}
	}
	return t, s, nil
}

// Linked reports whether teacher and student are linked.
func Linked(teacher, student *Profile) bool {
	t, s, err := roles("linked", teacher, student)
	if err != nil {
		return false
	}
	return lo.Contains(t.Students, student.ID) && lo.Contains(s.Teachers, teacher.ID)
}

// Invite records a teacher's invitation on the student.
func Invite(teacher, student *Profile, now time.Time) error {
	const op = "invite"
	t, s, err := roles(op, teacher, student)
	if err != nil {
		return err
	}
	if lo.Contains(t.Students, student.ID) {
		return &LinkError{Op: op, Reason: "student is already linked with you"}
	}
	if lo.Contains(s.Invitations, teacher.ID) {
		return &LinkError{Op: op, Reason: "an invitation to this student is already pending"}
	}
	s.Invitations = append(s.Invitations, teacher.ID)
	s.Notify(fmt.Sprintf("Teacher %s invited you to link.", teacher.Name), now)
	return nil
}

// RespondToInvitation accepts or declines a pending invitation.
func RespondToInvitation(student, teacher *Profile, accept bool, now time.Time) error {
	const op = "respond to invitation"
	t, s, err := roles(op, teacher, student)
	if err != nil {
		return err
	}
	if !lo.Contains(s.Invitations, teacher.ID) {
		return &LinkError{Op: op, Reason: "no pending invitation from " + teacher.ID}
	}
	s.Invitations = lo.Without(s.Invitations, teacher.ID)
	if !accept {
		return nil
	}
	link(t, s, teacher.ID, student.ID)
	s.Notify(fmt.Sprintf("You are now linked with %s.", teacher.Name), now)
	return nil
}

// RequestLink records a student's request on the teacher.
func RequestLink(student, teacher *Profile) error {
	const op = "request link"
	t, s, err := roles(op, teacher, student)
	if err != nil {
		return err
	}
	if lo.Contains(s.Teachers, teacher.ID) {
		return &LinkError{Op: op, Reason: "already linked with this teacher"}
	}
	if lo.Contains(s.SentRequests, teacher.ID) {
		return &LinkError{Op: op, Reason: "a request to this teacher is already pending"}
	}
	s.SentRequests = append(s.SentRequests, teacher.ID)
	if !lo.Contains(t.PendingRequests, student.ID) {
		t.PendingRequests = append(t.PendingRequests, student.ID)
	}
	return nil
}

// RespondToRequest accepts or rejects a student's pending request.
func RespondToRequest(teacher, student *Profile, accept bool, now time.Time) error {
	const op = "respond to request"
	t, s, err := roles(op, teacher, student)
	if err != nil {
		return err
	}
	if !lo.Contains(t.PendingRequests, student.ID) {
		return &LinkError{Op: op, Reason: "no pending request from " + student.ID}
	}
	t.PendingRequests = lo.Without(t.PendingRequests, student.ID)
	s.SentRequests = lo.Without(s.SentRequests, teacher.ID)

	if !accept {
		s.Notify(fmt.Sprintf("Teacher %s declined your link request.", teacher.Name), now)
		return nil
	}
	link(t, s, teacher.ID, student.ID)
	s.Notify(fmt.Sprintf("Teacher %s accepted your link request.", teacher.Name), now)
	return nil
}

// Unlink removes an existing link.
func Unlink(teacher, student *Profile, now time.Time) error {
	const op = "unlink"
	t, s, err := roles(op, teacher, student)
	if err != nil {
		return err
	}
	if !lo.Contains(t.Students, student.ID) {
		return &LinkError{Op: op, Reason: "student was not linked"}
	}
	t.Students = lo.Without(t.Students, student.ID)
	s.Teachers = lo.Without(s.Teachers, teacher.ID)
	s.Notify(fmt.Sprintf("Teacher %s unlinked you.", teacher.Name), now)
	return nil
}

func link(t *Teacher, s *Student, teacherID, studentID string) {
	if !lo.Contains(t.Students, studentID) {
		t.Students = append(t.Students, studentID)
	}
	if !lo.Contains(s.Teachers, teacherID) {
		s.Teachers = append(s.Teachers, teacherID)
	}
	s.SentRequests = lo.Without(s.SentRequests, teacherID)
	t.PendingRequests = lo.Without(t.PendingRequests, studentID)
}
