// Package quiz is the TUI screen that runs one practice quiz, exam,
// placement quiz or mistake review.
package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/braincourse/internal/content"
	qz "github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/router"
	"github.com/abhisek/braincourse/internal/screen"
	"github.com/abhisek/braincourse/internal/screens/summary"
	"github.com/abhisek/braincourse/internal/tutor"
	"github.com/abhisek/braincourse/internal/ui/components"
	"github.com/abhisek/braincourse/internal/ui/layout"
)

// StartFunc begins the run shown by the screen.
type StartFunc func(ctx context.Context) (*tutor.Run, error)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseQuitConfirm
	phaseFinishing
	phaseFailed
)

const spinnerInterval = 120 * time.Millisecond

// QuizScreen implements screen.Screen for an active quiz.
type QuizScreen struct {
	svc   *tutor.Service
	start StartFunc
	title string

	run    *tutor.Run
	cancel context.CancelFunc
	phase  phase
	resume phase
	choice components.MultiChoice
	last   qz.AnswerResult

	// help is the explanation shown under the current item.
	help        string
	helpMode    content.ExplainMode
	helpLoading bool

	errMsg    string
	retryable bool
	frame     int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen that starts its run with start.
func New(svc *tutor.Service, title string, start StartFunc) *QuizScreen {
	return &QuizScreen{svc: svc, start: start, title: title}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.begin(), spinnerCmd())
}

func (s *QuizScreen) Title() string {
	return s.title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "?", Description: "Hint"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseFeedback:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
		if !s.last.WasCorrect {
			hints = append(hints, layout.KeyHint{Key: "W", Description: "Why?"})
		}
		return append(hints, layout.KeyHint{Key: "S", Description: "Solution"})
	case phaseFailed:
		if s.retryable {
			return []layout.KeyHint{
				{Key: "R", Description: "Retry"},
				{Key: "Esc", Description: "Back"},
			}
		}
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case runStartedMsg:
		return s.handleStarted(msg)

	case explainedMsg:
		return s.handleExplained(msg)

	case finishedMsg:
		return s.handleFinished(msg)

	case spinnerTickMsg:
		if s.phase == phaseLoading || s.phase == phaseFinishing || s.helpLoading {
			s.frame++
			return s, spinnerCmd()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// begin starts the run under a context that esc cancels while loading.
func (s *QuizScreen) begin() tea.Cmd {
	start := s.start
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	return func() tea.Msg {
		run, err := start(ctx)
		return runStartedMsg{Run: run, Err: err}
	}
}

func (s *QuizScreen) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *QuizScreen) handleStarted(msg runStartedMsg) (screen.Screen, tea.Cmd) {
	s.release()
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	s.run = msg.Run
	s.showCurrent()
	return s, nil
}

func (s *QuizScreen) fail(err error) {
	s.phase = phaseFailed
	s.errMsg = err.Error()
	s.retryable = tutor.IsRetryable(err)
}

// showCurrent loads the next unanswered item into the chooser.
func (s *QuizScreen) showCurrent() {
	item, ok := s.run.Session.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(item.Question, item.Options)
	s.help = ""
	s.helpLoading = false
	s.phase = phaseQuestion
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseLoading:
		if key == "esc" {
			s.release()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case phaseFailed:
		switch key {
		case "r", "R":
			if s.retryable {
				s.phase = phaseLoading
				s.errMsg = ""
				return s, tea.Batch(s.begin(), spinnerCmd())
			}
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.phase = s.resume
		}
		return s, nil

	case phaseQuestion:
		switch key {
		case "esc":
			s.resume = s.phase
			s.phase = phaseQuitConfirm
			return s, nil
		case "?":
			return s, s.explain(content.ExplainHint)
		}
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			return s.submit()
		}
		return s, nil

	case phaseFeedback:
		switch key {
		case "esc":
			s.resume = s.phase
			s.phase = phaseQuitConfirm
			return s, nil
		case "w", "W":
			if !s.last.WasCorrect {
				return s, s.explain(content.ExplainWhy)
			}
			return s, nil
		case "s", "S":
			return s, s.explain(content.ExplainSolution)
		case "enter", "space":
			return s.advance()
		}
	}
	return s, nil
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	res, err := s.svc.Answer(s.run, s.choice.Chosen)
	if err != nil {
		s.fail(err)
		return s, nil
	}
	s.last = res
	s.choice.Reveal(res.Correct)
	s.help = ""
	s.helpLoading = false
	s.phase = phaseFeedback
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.run.Session.Done() {
		s.showCurrent()
		return s, nil
	}
	s.phase = phaseFinishing
	svc, run := s.svc, s.run
	return s, tea.Batch(spinnerCmd(), func() tea.Msg {
		sum, err := svc.Finish(context.Background(), run)
		return finishedMsg{Summary: sum, Err: err}
	})
}

func (s *QuizScreen) handleFinished(msg finishedMsg) (screen.Screen, tea.Cmd) {
	if msg.Summary == nil {
		s.fail(msg.Err)
		return s, nil
	}
	next := summary.New(s.svc, s.run, msg.Summary, msg.Err)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// explain requests help for the item on screen. Hints are asked before
// answering, so they never carry the learner's choice.
func (s *QuizScreen) explain(mode content.ExplainMode) tea.Cmd {
	if s.helpLoading {
		return nil
	}
	index := s.run.Session.Index
	req := content.ExplainRequest{Mode: mode}
	if mode == content.ExplainHint {
		item, ok := s.run.Session.Current()
		if !ok {
			return nil
		}
		req.Question, req.Options = item.Question, item.Options
	} else {
		if len(s.run.Session.Answered) == 0 {
			return nil
		}
		ans := s.run.Session.Answered[len(s.run.Session.Answered)-1]
		req.Question, req.Options = ans.Item.Question, ans.Item.Options
		req.Correct, req.UserAnswer = ans.Item.Correct, ans.UserAnswer
	}

	s.helpLoading = true
	s.helpMode = mode
	svc, userID := s.svc, s.run.Profile.ID
	return tea.Batch(spinnerCmd(), func() tea.Msg {
		text, err := svc.Explain(context.Background(), userID, req)
		return explainedMsg{Mode: mode, Index: index, Text: text, Err: err}
	})
}

func (s *QuizScreen) handleExplained(msg explainedMsg) (screen.Screen, tea.Cmd) {
	// Stale replies for an item that is no longer on screen are dropped.
	if s.run == nil || msg.Mode != s.helpMode || msg.Index != s.run.Session.Index {
		return s, nil
	}
	s.helpLoading = false
	if msg.Err != nil {
		s.help = "Brainy couldn't help right now: " + msg.Err.Error()
		return s, nil
	}
	s.help = msg.Text
	return s, nil
}

func spinnerCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
