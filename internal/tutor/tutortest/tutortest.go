// Package tutortest builds a tutor.Service over an in-memory store and a
// scripted LLM provider for tests of packages above tutor.
package tutortest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/llm"
	"github.com/abhisek/braincourse/internal/profile"
	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/store"
	"github.com/abhisek/braincourse/internal/tutor"
)

// Now is the fixed clock of every fixture.
var Now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

// Fixture is a wired service plus handles on its collaborators.
type Fixture struct {
	Service *tutor.Service
	Mock    *llm.MockProvider
	Store   *store.Store
}

// New opens a private in-memory database. It is closed when t ends.
func New(t testing.TB) *Fixture {
	t.Helper()
	db, err := store.OpenSQLite(context.Background(), "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mock := llm.NewMockProvider()
	gen := content.New(mock, content.DefaultConfig())
	clock := func() time.Time { return Now }

	svc := tutor.New(tutor.Options{
		Profiles:  db.Profiles(),
		Generator: gen,
		Orchestrator: quiz.New(gen,
			quiz.WithRand(rand.New(rand.NewPCG(1, 2))),
			quiz.WithClock(clock),
		),
		Sessions: db.Events(),
		Reports:  db.Reports(),
		Clock:    clock,
	})
	return &Fixture{Service: svc, Mock: mock, Store: db}
}

// AddStudent registers a secondary-school student.
func (f *Fixture) AddStudent(t testing.TB, email string) *profile.Profile {
	t.Helper()
	p, err := profile.NewStudent(email, "Ana", profile.StudentInfo{
		StudyStage: profile.StageSecondary,
		Goal:       profile.GoalReinforce,
	}, Now)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Service.Register(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

// QueueItems scripts one quiz response of n items whose right answer is
// always "yes".
func (f *Fixture) QueueItems(n int) {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{
			"question":       fmt.Sprintf("question %d", i+1),
			"options":        []string{"yes", "no", "maybe", "never"},
			"correct_answer": "yes",
		}
	}
	raw, _ := json.Marshal(map[string]any{"items": items})
	f.Mock.AddResponse(llm.MockResponse{Content: raw})
}

// QueueSyllabus scripts one syllabus response with the given module titles,
// each with two subtopics.
func (f *Fixture) QueueSyllabus(titles ...string) {
	modules := make([]map[string]any, len(titles))
	for i, title := range titles {
		modules[i] = map[string]any{
			"title":     title,
			"subtopics": []string{title + " basics", title + " practice"},
		}
	}
	raw, _ := json.Marshal(map[string]any{"modules": modules})
	f.Mock.AddResponse(llm.MockResponse{Content: raw})
}

// QueueText scripts one free-text response.
func (f *Fixture) QueueText(text string) {
	f.Mock.AddResponse(llm.MockText(text))
}
