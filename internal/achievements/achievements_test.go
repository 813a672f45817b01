package achievements

import (
	"testing"
	"time"

	"github.com/abhisek/braincourse/internal/progress"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func contains(ids []ID, id ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func TestEvaluate_SessionCompleted(t *testing.T) {
	tests := []struct {
		name string
		ev   SessionCompleted
		want []ID
	}{
		{"first quiz only", SessionCompleted{Correct: 2, Total: 3, DistinctTopics: 1}, []ID{FirstQuiz}},
		{"perfect five", SessionCompleted{Correct: 5, Total: 5, DistinctTopics: 1}, []ID{FirstQuiz, PerfectScore}},
		{"perfect four is not enough", SessionCompleted{Correct: 4, Total: 4, DistinctTopics: 1}, []ID{FirstQuiz}},
		{"polymath", SessionCompleted{Correct: 1, Total: 3, DistinctTopics: 5}, []ID{FirstQuiz, Polymath5}},
		{"everything", SessionCompleted{Correct: 10, Total: 10, DistinctTopics: 7}, []ID{FirstQuiz, PerfectScore, Polymath5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := progress.New()
			got := Evaluate(p, tt.ev, now)
			if len(got) != len(tt.want) {
				t.Fatalf("Evaluate = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Evaluate = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestEvaluate_AnswerRecorded(t *testing.T) {
	p := progress.New()
	if got := Evaluate(p, AnswerRecorded{Streak: 4}, now); len(got) != 0 {
		t.Fatalf("streak 4 unlocked %v", got)
	}
	got := Evaluate(p, AnswerRecorded{Streak: 5}, now)
	if len(got) != 1 || got[0] != Streak5 {
		t.Fatalf("streak 5 unlocked %v, want [streak_5]", got)
	}
	if got := Evaluate(p, AnswerRecorded{Streak: 9}, now); len(got) != 0 {
		t.Fatalf("streak 9 re-unlocked %v", got)
	}
}

func TestEvaluate_AnswerRecordedNeverTouchesSessionAchievements(t *testing.T) {
	p := progress.New()
	Evaluate(p, AnswerRecorded{Streak: 50}, now)
	if p.IsUnlocked(string(FirstQuiz)) || p.IsUnlocked(string(Polymath5)) {
		t.Error("answer event unlocked a session achievement")
	}
}

func TestEvaluate_IdempotentAcrossSessions(t *testing.T) {
	p := progress.New()
	first := Evaluate(p, SessionCompleted{Correct: 5, Total: 5, DistinctTopics: 5}, now)
	if len(first) != 3 {
		t.Fatalf("first evaluation = %v", first)
	}

	later := now.Add(24 * time.Hour)
	second := Evaluate(p, SessionCompleted{Correct: 6, Total: 6, DistinctTopics: 6}, later)
	if len(second) != 0 {
		t.Fatalf("second evaluation = %v, want none", second)
	}
	if !p.Achievements[string(PerfectScore)].Equal(now) {
		t.Error("unlock timestamp was overwritten")
	}
}

func TestPolymath_FifthDistinctTopic(t *testing.T) {
	p := progress.New()
	topics := []string{"algebra", "geometry", "vectors", "fractions", "statistics", "calculus"}

	for i, topic := range topics {
		p.RecordAnswer(topic, true)
		got := Evaluate(p, SessionCompleted{Correct: 1, Total: 1, DistinctTopics: p.DistinctTopics()}, now)

		switch {
		case i == 4 && !contains(got, Polymath5):
			t.Fatalf("session %d: expected polymath_5 in %v", i+1, got)
		case i != 4 && contains(got, Polymath5):
			t.Fatalf("session %d: unexpected polymath_5", i+1)
		}
	}
}

func TestCatalogAndLookup(t *testing.T) {
	defs := Catalog()
	if len(defs) != 4 {
		t.Fatalf("len(Catalog()) = %d, want 4", len(defs))
	}
	for _, d := range defs {
		got, ok := Lookup(d.ID)
		if !ok || got.Description == "" {
			t.Errorf("Lookup(%s) = %+v, %v", d.ID, got, ok)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup of unknown id succeeded")
	}

	defs[0].Title = "mutated"
	if d, _ := Lookup(defs[0].ID); d.Title == "mutated" {
		t.Error("Catalog() exposed internal slice")
	}
}

func TestUnlocked(t *testing.T) {
	p := progress.New()
	p.Unlock(string(Streak5), now)
	p.Unlock(string(FirstQuiz), now.Add(time.Minute))

	got := Unlocked(p)
	if len(got) != 2 {
		t.Fatalf("Unlocked = %+v", got)
	}
	if got[0].ID != FirstQuiz || got[1].ID != Streak5 {
		t.Errorf("order = %s, %s; want catalog order", got[0].ID, got[1].ID)
	}
}
