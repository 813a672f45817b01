package progress

import (
	"fmt"
	"time"
)

// ActivityKind labels what produced an activity record.
type ActivityKind string

const (
	ActivityPractice  ActivityKind = "practice"
	ActivityExam      ActivityKind = "exam"
	ActivityPlacement ActivityKind = "placement"
	ActivityReview    ActivityKind = "review"
)

// DisplayName returns the label shown in history listings.
func (k ActivityKind) DisplayName() string {
	switch k {
	case ActivityPractice:
		return "Practice Quiz"
	case ActivityExam:
		return "Module Exam"
	case ActivityPlacement:
		return "Placement Quiz"
	case ActivityReview:
		return "Mistake Review"
	default:
		return string(k)
	}
}

// ActivityRecord is the persisted trace of one finished quiz or exam.
type ActivityRecord struct {
	Kind      ActivityKind   `json:"kind"`
	Topic     string         `json:"topic"`
	Timestamp time.Time      `json:"timestamp"`
	Correct   int            `json:"correct"`
	Total     int            `json:"total"`
	Details   []AnswerDetail `json:"details"`

	// CourseID and ModuleID are set for module exams.
	CourseID string `json:"course_id,omitempty"`
	ModuleID string `json:"module_id,omitempty"`
}

// AnswerDetail is one question of an activity record.
type AnswerDetail struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	UserAnswer    string   `json:"user_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	WasCorrect    bool     `json:"was_correct"`
}

// Result formats the score as "correct/total".
func (r ActivityRecord) Result() string {
	return fmt.Sprintf("%d/%d", r.Correct, r.Total)
}

// Failed returns the details that were answered incorrectly.
func (r ActivityRecord) Failed() []AnswerDetail {
	var out []AnswerDetail
	for _, d := range r.Details {
		if !d.WasCorrect {
			out = append(out, d)
		}
	}
	return out
}

// PrependActivity inserts rec at the front of the activity log.
func (p *Progress) PrependActivity(rec ActivityRecord) {
	p.ActivityLog = append([]ActivityRecord{rec}, p.ActivityLog...)
}
