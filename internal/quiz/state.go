package quiz

import (
	"fmt"
	"slices"
	"strings"
)

// State is the lifecycle position of a quiz.
type State int

const (
	AwaitingTopic  State = iota // Practice setup: no topic yet
	AwaitingLength              // Practice setup: topic chosen, length pending
	InProgress                  // Serving items
	Complete                    // Every item answered
)

func (s State) String() string {
	switch s {
	case AwaitingTopic:
		return "awaiting-topic"
	case AwaitingLength:
		return "awaiting-length"
	case InProgress:
		return "in-progress"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DefaultLengths are the practice lengths offered when none are configured.
var DefaultLengths = []int{3, 5, 10}

// ExamLength is the fixed item count of a module exam.
const ExamLength = 5

// PlacementLength is the fixed item count of a placement quiz.
const PlacementLength = 5

// PlacementLevel is the starting level earned by a placement score: 80% or
// more places at level 5, 50% or more at level 3, anything else at 1.
func PlacementLevel(correct, total int) int {
	switch {
	case total <= 0:
		return 1
	case correct*10 >= total*8:
		return 5
	case correct*2 >= total:
		return 3
	default:
		return 1
	}
}

// Setup walks a practice quiz through topic and length selection. Exams
// and placement quizzes skip it.
type Setup struct {
	state   State
	topic   string
	length  int
	allowed []int
}

// NewSetup returns a Setup offering the given lengths, or DefaultLengths.
func NewSetup(allowed ...int) *Setup {
	if len(allowed) == 0 {
		allowed = DefaultLengths
	}
	return &Setup{state: AwaitingTopic, allowed: slices.Clone(allowed)}
}

// State returns the current setup state.
func (s *Setup) State() State { return s.state }

// Allowed returns the offered practice lengths.
func (s *Setup) Allowed() []int { return slices.Clone(s.allowed) }

// ChooseTopic records the topic. It may be called again while the length
// is still pending.
func (s *Setup) ChooseTopic(topic string) error {
	if s.state != AwaitingTopic && s.state != AwaitingLength {
		return &ValidationError{Field: "state", Message: "topic already fixed at " + s.state.String()}
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return &ValidationError{Field: "topic", Message: "topic is empty"}
	}
	s.topic = topic
	s.state = AwaitingLength
	return nil
}

// ChooseLength records the number of items and moves to InProgress.
func (s *Setup) ChooseLength(n int) error {
	if s.state != AwaitingLength {
		return &ValidationError{Field: "state", Message: "choose a topic first"}
	}
	if !slices.Contains(s.allowed, n) {
		return &ValidationError{Field: "length", Message: fmt.Sprintf("length %d is not one of %v", n, s.allowed)}
	}
	s.length = n
	s.state = InProgress
	return nil
}

// Params returns the start parameters once setup has finished.
func (s *Setup) Params() (Params, error) {
	if s.state != InProgress {
		return Params{}, &ValidationError{Field: "state", Message: "setup is " + s.state.String()}
	}
	return Params{Kind: KindPractice, Topic: s.topic, Count: s.length}, nil
}
