// Package progress holds a learner's mutable progress state: level, streak,
// statistics, recent topics, achievements and the activity log.
//
// All mutators are plain in-memory updates. Persisting the owning profile is
// the caller's job.
package progress

import "time"

const (
	// MaxRecentTopics bounds RecentTopics.
	MaxRecentTopics = 5

	// LevelUpEvery is the streak interval at which the level increases.
	LevelUpEvery = 3
)

// Progress is the per-user state machine driven by quiz answers.
type Progress struct {
	Level         int                   `json:"level"`
	CorrectStreak int                   `json:"correct_streak"`
	RecentTopics  []string              `json:"recent_topics"`
	Statistics    Statistics            `json:"statistics"`
	Achievements  map[string]*time.Time `json:"achievements"`
	ActivityLog   []ActivityRecord      `json:"activity_log"`
}

// Statistics aggregates answer counts overall and per topic.
type Statistics struct {
	TotalQuestions int                    `json:"total_questions"`
	TotalCorrect   int                    `json:"total_correct"`
	PerTopic       map[string]*TopicStats `json:"per_topic"`
}

// TopicStats counts answers for a single topic.
type TopicStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// New returns a Progress at level 1 with empty collections.
func New() *Progress {
	return &Progress{
		Level:        1,
		RecentTopics: []string{},
		Statistics: Statistics{
			PerTopic: make(map[string]*TopicStats),
		},
		Achievements: make(map[string]*time.Time),
		ActivityLog:  []ActivityRecord{},
	}
}

// Normalize repairs zero values left behind by decoding an older or partial
// record so the mutators can assume non-nil maps and Level >= 1.
func (p *Progress) Normalize() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.CorrectStreak < 0 {
		p.CorrectStreak = 0
	}
	if p.RecentTopics == nil {
		p.RecentTopics = []string{}
	}
	if p.Statistics.PerTopic == nil {
		p.Statistics.PerTopic = make(map[string]*TopicStats)
	}
	for topic, ts := range p.Statistics.PerTopic {
		if ts == nil {
			p.Statistics.PerTopic[topic] = &TopicStats{}
		}
	}
	if p.Achievements == nil {
		p.Achievements = make(map[string]*time.Time)
	}
	if p.ActivityLog == nil {
		p.ActivityLog = []ActivityRecord{}
	}
}

// RecordAnswer counts one answered question against the overall and
// per-topic statistics.
func (p *Progress) RecordAnswer(topic string, wasCorrect bool) {
	ts, ok := p.Statistics.PerTopic[topic]
	if !ok {
		ts = &TopicStats{}
		p.Statistics.PerTopic[topic] = ts
	}

	p.Statistics.TotalQuestions++
	ts.Total++
	if wasCorrect {
		p.Statistics.TotalCorrect++
		ts.Correct++
	}
}

// ApplyStreak extends the streak on a correct answer and clears it otherwise.
func (p *Progress) ApplyStreak(wasCorrect bool) {
	if wasCorrect {
		p.CorrectStreak++
		return
	}
	p.CorrectStreak = 0
}

// MaybeLevelUp raises the level when the streak sits on a multiple of
// LevelUpEvery. It must be called once per correct answer, after ApplyStreak.
func (p *Progress) MaybeLevelUp() bool {
	if p.CorrectStreak > 0 && p.CorrectStreak%LevelUpEvery == 0 {
		p.Level++
		return true
	}
	return false
}

// TouchTopic moves topic to the front of RecentTopics.
func (p *Progress) TouchTopic(topic string) {
	out := make([]string, 0, MaxRecentTopics)
	out = append(out, topic)
	for _, t := range p.RecentTopics {
		if t == topic {
			continue
		}
		if len(out) == MaxRecentTopics {
			break
		}
		out = append(out, t)
	}
	p.RecentTopics = out
}

// Unlock records the unlock time of an achievement. It reports false, and
// leaves the stored timestamp alone, when the achievement is already unlocked.
func (p *Progress) Unlock(id string, at time.Time) bool {
	if ts, ok := p.Achievements[id]; ok && ts != nil {
		return false
	}
	t := at
	p.Achievements[id] = &t
	return true
}

// IsUnlocked reports whether the achievement has an unlock timestamp.
func (p *Progress) IsUnlocked(id string) bool {
	ts, ok := p.Achievements[id]
	return ok && ts != nil
}

// DistinctTopics returns the number of topics with recorded answers.
func (p *Progress) DistinctTopics() int {
	return len(p.Statistics.PerTopic)
}

// Accuracy returns overall accuracy in [0, 1], or 0 with no answers.
func (p *Progress) Accuracy() float64 {
	if p.Statistics.TotalQuestions == 0 {
		return 0
	}
	return float64(p.Statistics.TotalCorrect) / float64(p.Statistics.TotalQuestions)
}

// TopicAccuracy returns accuracy for one topic and whether the topic exists.
func (p *Progress) TopicAccuracy(topic string) (float64, bool) {
	ts, ok := p.Statistics.PerTopic[topic]
	if !ok || ts.Total == 0 {
		return 0, ok
	}
	return float64(ts.Correct) / float64(ts.Total), true
}
