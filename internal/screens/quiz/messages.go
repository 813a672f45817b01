package quiz

import (
	"time"

	"github.com/abhisek/braincourse/internal/content"
	qz "github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/tutor"
)

// runStartedMsg is sent when the quiz items have been generated.
type runStartedMsg struct {
	Run *tutor.Run
	Err error
}

// explainedMsg carries a hint, solution or justification.
type explainedMsg struct {
	Mode  content.ExplainMode
	Index int
	Text  string
	Err   error
}

// finishedMsg is sent when Finish returns.
type finishedMsg struct {
	Summary *qz.Summary
	Err     error
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time
