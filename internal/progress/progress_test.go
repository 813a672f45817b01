package progress

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	p := New()
	if p.Level != 1 {
		t.Errorf("Level = %d, want 1", p.Level)
	}
	if p.CorrectStreak != 0 {
		t.Errorf("CorrectStreak = %d, want 0", p.CorrectStreak)
	}
	if p.Statistics.PerTopic == nil || p.Achievements == nil {
		t.Fatal("expected initialized maps")
	}
}

func TestRecordAnswer(t *testing.T) {
	p := New()
	p.RecordAnswer("algebra", true)
	p.RecordAnswer("algebra", false)
	p.RecordAnswer("vectors", false)

	if p.Statistics.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", p.Statistics.TotalQuestions)
	}
	if p.Statistics.TotalCorrect != 1 {
		t.Errorf("TotalCorrect = %d, want 1", p.Statistics.TotalCorrect)
	}

	alg := p.Statistics.PerTopic["algebra"]
	if alg.Correct != 1 || alg.Total != 2 {
		t.Errorf("algebra = %+v, want {1 2}", *alg)
	}
	vec := p.Statistics.PerTopic["vectors"]
	if vec.Correct != 0 || vec.Total != 1 {
		t.Errorf("vectors = %+v, want {0 1}", *vec)
	}
}

func TestRecordAnswer_CountsNeverExceedTotals(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	topics := []string{"a", "b", "c", "d"}
	p := New()

	for range 500 {
		p.RecordAnswer(topics[rng.IntN(len(topics))], rng.IntN(2) == 0)

		if p.Statistics.TotalCorrect > p.Statistics.TotalQuestions {
			t.Fatalf("TotalCorrect %d > TotalQuestions %d", p.Statistics.TotalCorrect, p.Statistics.TotalQuestions)
		}
		for topic, ts := range p.Statistics.PerTopic {
			if ts.Correct > ts.Total {
				t.Fatalf("topic %s: correct %d > total %d", topic, ts.Correct, ts.Total)
			}
		}
	}
}

func TestApplyStreak_ResetsOnMiss(t *testing.T) {
	for _, start := range []int{0, 1, 4, 17} {
		p := New()
		p.CorrectStreak = start
		p.ApplyStreak(false)
		if p.CorrectStreak != 0 {
			t.Errorf("streak from %d after miss = %d, want 0", start, p.CorrectStreak)
		}
	}
}

func TestMaybeLevelUp_OnlyAtMultiplesOfThree(t *testing.T) {
	p := New()
	var levelUps []int
	for i := 1; i <= 12; i++ {
		p.ApplyStreak(true)
		if p.MaybeLevelUp() {
			levelUps = append(levelUps, p.CorrectStreak)
		}
	}

	want := []int{3, 6, 9, 12}
	if len(levelUps) != len(want) {
		t.Fatalf("level ups at %v, want %v", levelUps, want)
	}
	for i := range want {
		if levelUps[i] != want[i] {
			t.Errorf("level up %d at streak %d, want %d", i, levelUps[i], want[i])
		}
	}
	if p.Level != 5 {
		t.Errorf("Level = %d, want 5", p.Level)
	}
}

func TestMaybeLevelUp_ZeroStreak(t *testing.T) {
	p := New()
	if p.MaybeLevelUp() {
		t.Error("expected no level up at streak 0")
	}
	if p.Level != 1 {
		t.Errorf("Level = %d, want 1", p.Level)
	}
}

func TestThreeCorrectInARow(t *testing.T) {
	p := New()
	var leveled bool
	for range 3 {
		p.RecordAnswer("algebra", true)
		p.ApplyStreak(true)
		leveled = p.MaybeLevelUp()
	}
	if !leveled {
		t.Error("expected level up on third correct answer")
	}
	if p.Level != 2 {
		t.Errorf("Level = %d, want 2", p.Level)
	}
	if p.CorrectStreak != 3 {
		t.Errorf("CorrectStreak = %d, want 3", p.CorrectStreak)
	}
}

func TestTouchTopic(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		touch   string
		want    []string
	}{
		{"empty", nil, "a", []string{"a"}},
		{"new to front", []string{"a", "b"}, "c", []string{"c", "a", "b"}},
		{"existing moves", []string{"a", "b", "c"}, "c", []string{"c", "a", "b"}},
		{"truncates", []string{"a", "b", "c", "d", "e"}, "f", []string{"f", "a", "b", "c", "d"}},
		{"existing at full", []string{"a", "b", "c", "d", "e"}, "d", []string{"d", "a", "b", "c", "e"}},
		{"already first", []string{"a", "b"}, "a", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.RecentTopics = tt.initial
			p.TouchTopic(tt.touch)
			if len(p.RecentTopics) != len(tt.want) {
				t.Fatalf("RecentTopics = %v, want %v", p.RecentTopics, tt.want)
			}
			for i := range tt.want {
				if p.RecentTopics[i] != tt.want[i] {
					t.Fatalf("RecentTopics = %v, want %v", p.RecentTopics, tt.want)
				}
			}
		})
	}
}

func TestTouchTopic_BoundedAndUnique(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p := New()
	for range 200 {
		p.TouchTopic(string(rune('a' + rng.IntN(9))))
		if len(p.RecentTopics) > MaxRecentTopics {
			t.Fatalf("len(RecentTopics) = %d", len(p.RecentTopics))
		}
		seen := make(map[string]bool)
		for _, topic := range p.RecentTopics {
			if seen[topic] {
				t.Fatalf("duplicate %q in %v", topic, p.RecentTopics)
			}
			seen[topic] = true
		}
	}
}

func TestUnlock_Idempotent(t *testing.T) {
	p := New()
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if !p.Unlock("first_quiz", first) {
		t.Fatal("first unlock should report a change")
	}
	if p.Unlock("first_quiz", first.Add(time.Hour)) {
		t.Fatal("second unlock should report no change")
	}
	if got := *p.Achievements["first_quiz"]; !got.Equal(first) {
		t.Errorf("timestamp = %v, want %v", got, first)
	}
}

func TestUnlock_NilEntryIsLocked(t *testing.T) {
	p := New()
	p.Achievements["streak_5"] = nil

	if p.IsUnlocked("streak_5") {
		t.Fatal("nil timestamp should read as locked")
	}
	if !p.Unlock("streak_5", time.Now()) {
		t.Error("expected unlock of nil entry to report a change")
	}
}

func TestNormalize_DecodedPartialRecord(t *testing.T) {
	var p Progress
	if err := json.Unmarshal([]byte(`{"level":0,"statistics":{"per_topic":{"x":null}}}`), &p); err != nil {
		t.Fatal(err)
	}
	p.Normalize()

	if p.Level != 1 {
		t.Errorf("Level = %d, want 1", p.Level)
	}
	if p.Statistics.PerTopic["x"] == nil {
		t.Error("expected nil topic stats to be replaced")
	}
	p.RecordAnswer("y", true)
	if !p.Unlock("first_quiz", time.Now()) {
		t.Error("expected unlock to work after normalize")
	}
}

func TestPrependActivity(t *testing.T) {
	p := New()
	p.PrependActivity(ActivityRecord{Topic: "old"})
	p.PrependActivity(ActivityRecord{Topic: "new"})

	if p.ActivityLog[0].Topic != "new" || p.ActivityLog[1].Topic != "old" {
		t.Errorf("ActivityLog order = %q, %q", p.ActivityLog[0].Topic, p.ActivityLog[1].Topic)
	}
}

func TestActivityRecord_ResultAndFailed(t *testing.T) {
	rec := ActivityRecord{
		Correct: 1,
		Total:   3,
		Details: []AnswerDetail{
			{Question: "q1", WasCorrect: true},
			{Question: "q2"},
			{Question: "q3"},
		},
	}
	if rec.Result() != "1/3" {
		t.Errorf("Result() = %q, want 1/3", rec.Result())
	}
	failed := rec.Failed()
	if len(failed) != 2 || failed[0].Question != "q2" {
		t.Errorf("Failed() = %+v", failed)
	}
}

func TestAccuracy(t *testing.T) {
	p := New()
	if p.Accuracy() != 0 {
		t.Errorf("Accuracy() on empty = %v", p.Accuracy())
	}
	p.RecordAnswer("a", true)
	p.RecordAnswer("a", false)
	p.RecordAnswer("b", true)
	p.RecordAnswer("b", true)

	if got := p.Accuracy(); got != 0.75 {
		t.Errorf("Accuracy() = %v, want 0.75", got)
	}
	if got, ok := p.TopicAccuracy("a"); !ok || got != 0.5 {
		t.Errorf("TopicAccuracy(a) = %v, %v", got, ok)
	}
	if _, ok := p.TopicAccuracy("zzz"); ok {
		t.Error("unknown topic should report ok=false")
	}
}
