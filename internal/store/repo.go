package store

import (
	"context"
	"time"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Subject string    // exact subject match when non-empty
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID         string
	Action            string // ActionStart or ActionEnd
	Subject           string
	TotalQuestions    int
	QuestionsAnswered int
	Score             int
	FinalLevel        string
	EndReason         string
	DurationSecs      int
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID    string
	QuestionID   string
	Subject      string
	Level        string
	Concept      string
	Chosen       string // empty when the question went unanswered
	CorrectLabel string
	Correct      bool
	Stage        string
	TimeMs       int
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
}

// SessionRecord is a finished session as read back for history.
type SessionRecord struct {
	Sequence          int64
	Timestamp         time.Time
	SessionID         string
	Subject           string
	TotalQuestions    int
	QuestionsAnswered int
	Score             int
	FinalLevel        string
	EndReason         string
	DurationSecs      int
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// QueryAnswers returns the answers of one session in the order given.
	QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)
}
