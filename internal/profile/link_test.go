package profile

import (
	"errors"
	"testing"
)

func TestInviteAndAccept(t *testing.T) {
	teacher := mustTeacher(t, "ruiz@school.edu")
	student := mustStudent(t, "ana@example.com")

	if err := Invite(teacher, student, now); err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if got := student.Student().Invitations; len(got) != 1 || got[0] != teacher.ID {
		t.Fatalf("Invitations = %v", got)
	}
	if student.Student().Unread() != 1 {
		t.Errorf("Unread = %d, want 1", student.Student().Unread())
	}

	// A second invite is refused while pending.
	var le *LinkError
	if err := Invite(teacher, student, now); !errors.As(err, &le) {
		t.Fatalf("duplicate invite err = %v, want LinkError", err)
	}

	if err := RespondToInvitation(student, teacher, true, now); err != nil {
		t.Fatalf("RespondToInvitation: %v", err)
	}
	if !Linked(teacher, student) {
		t.Fatal("expected link after accepting")
	}
	if len(student.Student().Invitations) != 0 {
		t.Errorf("invitation not cleared: %v", student.Student().Invitations)
	}

	if err := Invite(teacher, student, now); !errors.As(err, &le) {
		t.Fatalf("invite of linked student err = %v, want LinkError", err)
	}
}

func TestDeclineInvitation(t *testing.T) {
	teacher := mustTeacher(t, "ruiz@school.edu")
	student := mustStudent(t, "ana@example.com")

	if err := Invite(teacher, student, now); err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if err := RespondToInvitation(student, teacher, false, now); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if Linked(teacher, student) {
		t.Error("declined invitation should not link")
	}
	if err := RespondToInvitation(student, teacher, true, now); err == nil {
		t.Error("responding twice should fail")
	}
}

func TestRequestAndRespond(t *testing.T) {
	tests := []struct {
		name   string
		accept bool
		linked bool
	}{
		{"accept", true, true},
		{"reject", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teacher := mustTeacher(t, "ruiz@school.edu")
			student := mustStudent(t, "ana@example.com")

			if err := RequestLink(student, teacher); err != nil {
				t.Fatalf("RequestLink: %v", err)
			}
			if err := RequestLink(student, teacher); err == nil {
				t.Fatal("duplicate request should fail")
			}
			if got := teacher.Teacher().PendingRequests; len(got) != 1 {
				t.Fatalf("PendingRequests = %v", got)
			}

			if err := RespondToRequest(teacher, student, tt.accept, now); err != nil {
				t.Fatalf("RespondToRequest: %v", err)
			}
			if Linked(teacher, student) != tt.linked {
				t.Errorf("Linked = %v, want %v", !tt.linked, tt.linked)
			}
			if len(teacher.Teacher().PendingRequests) != 0 || len(student.Student().SentRequests) != 0 {
				t.Error("pending request not cleared")
			}
			if len(student.Student().Notifications) != 1 {
				t.Errorf("notifications = %d, want 1", len(student.Student().Notifications))
			}
		})
	}
}

func TestUnlink(t *testing.T) {
	teacher := mustTeacher(t, "ruiz@school.edu")
	student := mustStudent(t, "ana@example.com")

	if err := Unlink(teacher, student, now); err == nil {
		t.Fatal("unlinking an unlinked student should fail")
	}

	if err := RequestLink(student, teacher); err != nil {
		t.Fatal(err)
	}
	if err := RespondToRequest(teacher, student, true, now); err != nil {
		t.Fatal(err)
	}
	if err := Unlink(teacher, student, now); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if Linked(teacher, student) {
		t.Error("still linked after Unlink")
	}
}

func TestLinkRoleChecks(t *testing.T) {
	a := mustStudent(t, "a@example.com")
	b := mustStudent(t, "b@example.com")

	var le *LinkError
	if err := Invite(a, b, now); !errors.As(err, &le) {
		t.Errorf("student inviting student err = %v, want LinkError", err)
	}
	if err := RequestLink(a, b); !errors.As(err, &le) {
		t.Errorf("request to non-teacher err = %v, want LinkError", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	s := mustStudent(t, "ana@example.com").Student()
	s.Notify("one", now)
	s.Notify("two", now)
	if s.Notifications[0].Message != "two" {
		t.Errorf("newest first expected, got %q", s.Notifications[0].Message)
	}
	s.MarkAllRead()
	if s.Unread() != 0 {
		t.Errorf("Unread = %d after MarkAllRead", s.Unread())
	}
}
