// Package achievements evaluates milestone unlocks against a learner's
// progress. Evaluation is pure apart from calling progress.Unlock, which is
// itself idempotent.
package achievements

import (
	"time"

	"github.com/abhisek/braincourse/internal/progress"
)

// ID identifies an achievement in the catalog.
type ID string

const (
	FirstQuiz    ID = "first_quiz"
	PerfectScore ID = "perfect_score"
	Streak5      ID = "streak_5"
	Polymath5    ID = "polymath_5"
)

const (
	// PerfectScoreMinQuestions is the smallest session eligible for PerfectScore.
	PerfectScoreMinQuestions = 5

	streakTarget   = 5
	polymathTarget = 5
)

// Definition describes an achievement for display.
type Definition struct {
	ID          ID
	Title       string
	Description string
	Icon        string
}

var catalog = []Definition{
	{ID: FirstQuiz, Title: "First Steps", Description: "Complete your first quiz.", Icon: "🎓"},
	{ID: PerfectScore, Title: "Brilliant Mind", Description: "Get every answer right in a quiz of 5 or more questions.", Icon: "💡"},
	{ID: Streak5, Title: "On Fire", Description: "Answer 5 questions correctly in a row.", Icon: "🔥"},
	{ID: Polymath5, Title: "Polymath", Description: "Practice 5 different topics.", Icon: "🧭"},
}

// Catalog returns all achievement definitions in display order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Event is one of the closed set of occurrences that trigger checks.
type Event interface {
	isEvent()
}

// AnswerRecorded fires after an answer has updated the streak.
type AnswerRecorded struct {
	Streak int
}

// SessionCompleted fires once when a quiz or exam finishes.
type SessionCompleted struct {
	Correct        int
	Total          int
	DistinctTopics int
}

func (AnswerRecorded) isEvent()   {}
func (SessionCompleted) isEvent() {}

// Evaluate unlocks every achievement whose condition holds for ev and
// returns the ones that changed from locked to unlocked, in catalog order.
func Evaluate(p *progress.Progress, ev Event, at time.Time) []ID {
	var candidates []ID

	switch e := ev.(type) {
	case AnswerRecorded:
		if e.Streak >= streakTarget {
			candidates = append(candidates, Streak5)
		}
	case SessionCompleted:
		candidates = append(candidates, FirstQuiz)
		if e.Total >= PerfectScoreMinQuestions && e.Correct == e.Total {
			candidates = append(candidates, PerfectScore)
		}
		if e.DistinctTopics >= polymathTarget {
			candidates = append(candidates, Polymath5)
		}
	}

	var unlocked []ID
	for _, id := range candidates {
		if p.Unlock(string(id), at) {
			unlocked = append(unlocked, id)
		}
	}
	return unlocked
}

// Unlock pairs a definition with the time it was earned.
type Unlock struct {
	Definition
	At time.Time
}

// Unlocked lists the achievements p has earned, in catalog order.
func Unlocked(p *progress.Progress) []Unlock {
	var out []Unlock
	for _, d := range catalog {
		if ts := p.Achievements[string(d.ID)]; ts != nil {
			out = append(out, Unlock{Definition: d, At: *ts})
		}
	}
	return out
}
