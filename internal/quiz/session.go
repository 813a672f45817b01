package quiz

import (
	"time"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/profile"
	"github.com/abhisek/braincourse/internal/progress"
)

// Session kinds, shared with the activity log.
const (
	KindPractice  = progress.ActivityPractice
	KindExam      = progress.ActivityExam
	KindPlacement = progress.ActivityPlacement
	KindReview    = progress.ActivityReview
)

// Params describes the quiz to start.
type Params struct {
	Kind progress.ActivityKind

	// Topic labels the session in statistics and the activity log. For
	// exams it is the module title.
	Topic string

	// Subtopics is the exam coverage list.
	Subtopics []string

	Count int
	Level int

	// Profile is the prompt context of the learner, nil when unknown.
	Profile *profile.PromptContext

	// CourseID and ModuleID identify the module an exam belongs to.
	CourseID string
	ModuleID string
}

// Session is one run of items. It is never persisted mid-flight and is owned
// by a single caller for its whole life.
type Session struct {
	ID   string
	Kind progress.ActivityKind

	Topic    string
	CourseID string
	ModuleID string

	Items []content.Item

	// Index is the position of the next unanswered item.
	Index int

	CorrectCount int
	IsExam       bool
	Answered     []Answer

	// LeveledUp is set once any answer in the session raised the level.
	LeveledUp bool

	// Unlocked collects achievements unlocked by answers in this session.
	Unlocked []achievements.ID

	State     State
	StartedAt time.Time

	completed bool
}

// Answer is one entry of the answered log.
type Answer struct {
	Item       content.Item
	UserAnswer string
	WasCorrect bool
}

// Current returns the next unanswered item.
func (s *Session) Current() (content.Item, bool) {
	if s.Index >= len(s.Items) {
		return content.Item{}, false
	}
	return s.Items[s.Index], true
}

// Done reports whether every item has been answered.
func (s *Session) Done() bool {
	return s.Index >= len(s.Items)
}

// Remaining returns how many items are still unanswered.
func (s *Session) Remaining() int {
	return max(len(s.Items)-s.Index, 0)
}

// AnswerResult is the outcome of one submitted answer.
type AnswerResult struct {
	WasCorrect bool
	LeveledUp  bool
	Unlocked   []achievements.ID

	// Correct is the right option, for feedback display.
	Correct string
}

// Summary is the end-of-session report. Activity has not been appended to
// the activity log yet.
type Summary struct {
	Correct   int
	Total     int
	Unlocked  []achievements.ID
	LeveledUp bool
	Activity  progress.ActivityRecord

	// Placed is the starting level set by a placement quiz, 0 otherwise.
	Placed int
}

// Perfect reports whether every item was answered correctly.
func (s *Summary) Perfect() bool {
	return s.Total > 0 && s.Correct == s.Total
}
