package quiz

import (
	"errors"
	"testing"
)

func TestSetup(t *testing.T) {
	s := NewSetup()
	if s.State() != AwaitingTopic {
		t.Fatalf("initial state = %s", s.State())
	}

	var ve *ValidationError
	if err := s.ChooseLength(5); !errors.As(err, &ve) {
		t.Errorf("length before topic: err = %v", err)
	}
	if _, err := s.Params(); err == nil {
		t.Error("Params before setup finished should fail")
	}
	if err := s.ChooseTopic(" "); !errors.As(err, &ve) || ve.Field != "topic" {
		t.Errorf("blank topic: err = %v", err)
	}

	if err := s.ChooseTopic("algebra"); err != nil {
		t.Fatal(err)
	}
	if err := s.ChooseTopic(" geometry "); err != nil {
		t.Fatalf("changing topic while length pending: %v", err)
	}
	if s.State() != AwaitingLength {
		t.Fatalf("state = %s", s.State())
	}

	if err := s.ChooseLength(7); !errors.As(err, &ve) || ve.Field != "length" {
		t.Errorf("length 7: err = %v", err)
	}
	if err := s.ChooseLength(10); err != nil {
		t.Fatal(err)
	}
	if s.State() != InProgress {
		t.Fatalf("state = %s", s.State())
	}
	if err := s.ChooseTopic("calculus"); err == nil {
		t.Error("topic change after setup should fail")
	}

	p, err := s.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.Topic != "geometry" || p.Count != 10 || p.Kind != KindPractice {
		t.Errorf("Params = %+v", p)
	}
}

func TestSetup_CustomLengths(t *testing.T) {
	s := NewSetup(4, 8)
	if err := s.ChooseTopic("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.ChooseLength(5); err == nil {
		t.Error("5 is not offered")
	}
	if err := s.ChooseLength(8); err != nil {
		t.Errorf("8: %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		AwaitingTopic:  "awaiting-topic",
		AwaitingLength: "awaiting-length",
		InProgress:     "in-progress",
		Complete:       "complete",
		State(9):       "state(9)",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(s), s.String(), want)
		}
	}
}

func TestPlacementLevel(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{5, 5, 5},
		{4, 5, 5},
		{8, 10, 5},
		{7, 10, 3},
		{3, 5, 3},
		{5, 10, 3},
		{2, 5, 1},
		{0, 5, 1},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := PlacementLevel(tt.correct, tt.total); got != tt.want {
			t.Errorf("PlacementLevel(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
