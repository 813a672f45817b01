// Package quiz runs practice quizzes, module exams, placement quizzes and
// mistake reviews: item generation, option shuffling, answer scoring and
// end-of-session summaries.
//
// The orchestrator mutates the learner's progress in memory only. Saving the
// profile after Complete is the caller's job.
package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/braincourse/internal/achievements"
	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/progress"
)

// DefaultTimeout bounds StartAsync.
const DefaultTimeout = 45 * time.Second

// Orchestrator ties content generation to progress updates.
type Orchestrator struct {
	gen content.Generator

	mu  sync.Mutex // guards rng
	rng *rand.Rand

	now     func() time.Time
	timeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRand sets the source used to shuffle options.
func WithRand(r *rand.Rand) Option {
	return func(o *Orchestrator) { o.rng = r }
}

// WithClock sets the time source for unlock and activity timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithTimeout sets the StartAsync generation timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// New creates an Orchestrator backed by gen.
func New(gen content.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:     gen,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start generates the items of a new session and shuffles their options.
// A non-positive count or an unusable reply is a *content.GenerationError;
// the generator is not called for a non-positive count.
func (o *Orchestrator) Start(ctx context.Context, p Params) (*Session, error) {
	if p.Kind == "" {
		p.Kind = KindPractice
	}
	kind := contentKind(p.Kind)
	if kind == "" {
		return nil, &ValidationError{Field: "kind", Message: fmt.Sprintf("cannot generate a %q session", p.Kind)}
	}
	topic := strings.TrimSpace(p.Topic)
	if topic == "" {
		return nil, &ValidationError{Field: "topic", Message: "topic is empty"}
	}
	if p.Count <= 0 {
		return nil, &content.GenerationError{Kind: kind, Reason: fmt.Sprintf("invalid item count %d", p.Count)}
	}

	items, err := o.gen.Items(ctx, content.Request{
		Kind:      kind,
		Topic:     topic,
		Subtopics: p.Subtopics,
		Level:     p.Level,
		Count:     p.Count,
		Profile:   p.Profile,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &content.GenerationError{Kind: kind, Reason: "no items generated"}
	}

	items, err = o.shuffle(kind, items)
	if err != nil {
		return nil, err
	}

	return o.newSession(p.Kind, topic, items, p.CourseID, p.ModuleID), nil
}

// StartOutcome is delivered by StartAsync.
type StartOutcome = content.Result[*Session]

// StartAsync runs Start on its own goroutine bounded by the configured
// timeout. The channel receives exactly one outcome.
func (o *Orchestrator) StartAsync(ctx context.Context, p Params) <-chan StartOutcome {
	kind := contentKind(p.Kind)
	if kind == "" {
		kind = content.KindQuiz
	}
	return content.Async(ctx, kind, o.timeout, func(ctx context.Context) (*Session, error) {
		return o.Start(ctx, p)
	})
}

// StartReview builds a practice session from the failed items of a past
// activity. The generator is not called. Placement quizzes are not
// reviewed since their label is not a topic.
func (o *Orchestrator) StartReview(rec progress.ActivityRecord) (*Session, error) {
	if rec.Kind == KindPlacement {
		return nil, &ValidationError{Field: "activity", Message: "placement quizzes cannot be reviewed"}
	}
	failed := rec.Failed()
	if len(failed) == 0 {
		return nil, &ValidationError{Field: "activity", Message: "no failed questions to review"}
	}

	items := make([]content.Item, 0, len(failed))
	for _, d := range failed {
		items = append(items, content.Item{
			Question: d.Question,
			Options:  slices.Clone(d.Options),
			Correct:  d.CorrectAnswer,
		})
	}
	items, err := o.shuffle(content.KindQuiz, items)
	if err != nil {
		return nil, err
	}

	topic := rec.Topic
	if topic == "" {
		topic = "review"
	}
	return o.newSession(KindReview, topic, items, "", ""), nil
}

// Submit scores the answer to the current item and applies it to p. A
// finished session is rejected before anything changes. An answer that is
// not among the options is just incorrect. Placement answers are only
// scored; they leave statistics, streak, level and achievements alone.
func (o *Orchestrator) Submit(s *Session, p *progress.Progress, chosen string) (AnswerResult, error) {
	item, ok := s.Current()
	if !ok || s.State != InProgress {
		return AnswerResult{}, &ValidationError{Field: "session", Message: "session has no unanswered items"}
	}

	correct := chosen == item.Correct

	var (
		leveled  bool
		unlocked []achievements.ID
	)
	if s.Kind != KindPlacement {
		p.RecordAnswer(s.Topic, correct)
		p.ApplyStreak(correct)
		if correct {
			leveled = p.MaybeLevelUp()
		}
		unlocked = achievements.Evaluate(p, achievements.AnswerRecorded{Streak: p.CorrectStreak}, o.now())
	}

	s.Answered = append(s.Answered, Answer{Item: item, UserAnswer: chosen, WasCorrect: correct})
	if correct {
		s.CorrectCount++
	}
	s.LeveledUp = s.LeveledUp || leveled
	s.Unlocked = append(s.Unlocked, unlocked...)
	s.Index++
	if s.Done() {
		s.State = Complete
	}

	return AnswerResult{
		WasCorrect: correct,
		LeveledUp:  leveled,
		Unlocked:   unlocked,
		Correct:    item.Correct,
	}, nil
}

// Complete builds the activity record and runs the session achievements.
// Practice sessions also move their topic to the front of the recent
// topics. A placement quiz instead sets the starting level from its score
// and resets the streak; it never lowers the level and unlocks nothing. It
// is valid once per session, after the last item has been answered.
func (o *Orchestrator) Complete(s *Session, p *progress.Progress) (*Summary, error) {
	if !s.Done() {
		return nil, &ValidationError{
			Field:   "session",
			Message: fmt.Sprintf("%d of %d items still unanswered", s.Remaining(), len(s.Items)),
		}
	}
	if s.completed {
		return nil, &ValidationError{Field: "session", Message: "session already completed"}
	}

	now := o.now()
	rec := progress.ActivityRecord{
		Kind:      s.Kind,
		Topic:     s.Topic,
		Timestamp: now,
		Correct:   s.CorrectCount,
		Total:     len(s.Items),
		Details:   make([]progress.AnswerDetail, 0, len(s.Answered)),
		CourseID:  s.CourseID,
		ModuleID:  s.ModuleID,
	}
	for _, a := range s.Answered {
		rec.Details = append(rec.Details, progress.AnswerDetail{
			Question:      a.Item.Question,
			Options:       a.Item.Options,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: a.Item.Correct,
			WasCorrect:    a.WasCorrect,
		})
	}

	var (
		unlocked []achievements.ID
		placed   int
	)
	if s.Kind == KindPlacement {
		placed = PlacementLevel(rec.Correct, rec.Total)
		if placed > p.Level {
			p.Level = placed
			s.LeveledUp = true
		}
		p.CorrectStreak = 0
	} else {
		if s.Kind == KindPractice {
			p.TouchTopic(s.Topic)
		}
		unlocked = achievements.Evaluate(p, achievements.SessionCompleted{
			Correct:        rec.Correct,
			Total:          rec.Total,
			DistinctTopics: p.DistinctTopics(),
		}, now)
	}

	s.completed = true
	s.State = Complete

	return &Summary{
		Correct:   rec.Correct,
		Total:     rec.Total,
		Unlocked:  append(slices.Clone(s.Unlocked), unlocked...),
		LeveledUp: s.LeveledUp,
		Activity:  rec,
		Placed:    placed,
	}, nil
}

func (o *Orchestrator) newSession(kind progress.ActivityKind, topic string, items []content.Item, courseID, moduleID string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Kind:      kind,
		Topic:     topic,
		CourseID:  courseID,
		ModuleID:  moduleID,
		Items:     items,
		IsExam:    kind == KindExam,
		State:     InProgress,
		StartedAt: o.now(),
	}
}

// shuffle permutes each item's options and checks the correct answer
// survived. The input slices are not modified.
func (o *Orchestrator) shuffle(kind content.Kind, items []content.Item) ([]content.Item, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]content.Item, len(items))
	for i, it := range items {
		opts := slices.Clone(it.Options)
		o.rng.Shuffle(len(opts), func(a, b int) { opts[a], opts[b] = opts[b], opts[a] })
		it.Options = opts

		if len(opts) < 2 || !it.HasOption(it.Correct) {
			return nil, &content.GenerationError{
				Kind:   kind,
				Reason: fmt.Sprintf("item %d: correct answer %q not among %d options", i, it.Correct, len(opts)),
			}
		}
		out[i] = it
	}
	return out, nil
}

func contentKind(k progress.ActivityKind) content.Kind {
	switch k {
	case KindPractice:
		return content.KindQuiz
	case KindExam:
		return content.KindExam
	case KindPlacement:
		return content.KindPlacement
	default:
		return ""
	}
}
