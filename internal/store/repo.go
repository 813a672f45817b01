package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int       // id > After
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// SessionEventData records one completed quiz activity.
type SessionEventData struct {
	ProfileID string
	SessionID string
	Kind      string
	Topic     string
	Correct   int
	Total     int
	LeveledUp bool
	Unlocked  []string
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID        int
	Timestamp time.Time
	SessionEventData
}

// ReportStatus tracks a teacher error report through review.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved:
		return true
	}
	return false
}

// ErrorReport is a teacher's correction of a generated answer.
type ErrorReport struct {
	ID            string
	TeacherID     string
	Question      string
	AIAnswer      string
	TeacherAnswer string
	Justification string
	Status        ReportStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReportFilter narrows ReportRepo.List.
type ReportFilter struct {
	TeacherID string
	Status    ReportStatus
}
