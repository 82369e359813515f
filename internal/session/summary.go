package session

import (
	"time"

	"github.com/abhisek/examprep/internal/bank"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	Subject        string
	Score          int
	Answered       int
	TotalQuestions int
	FinalLevel     bank.Level
	Reason         EndReason
	Duration       time.Duration
}

// Accuracy returns Score / Answered, or 0 before any answer.
func (s *SessionSummary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Answered)
}

// BuildSummary creates a SessionSummary from the session state. For a
// session still running, the duration is measured up to now.
func BuildSummary(state *SessionState, now time.Time) *SessionSummary {
	end := now
	if state.Ended() {
		end = state.EndedAt
	}
	return &SessionSummary{
		SessionID:      state.ID,
		Subject:        state.Subject,
		Score:          state.Score,
		Answered:       state.Answered,
		TotalQuestions: state.TotalQuestions,
		FinalLevel:     state.Level,
		Reason:         state.EndReason,
		Duration:       end.Sub(state.StartTime),
	}
}

// Summary returns the session summary.
func (c *Controller) Summary() *SessionSummary {
	return BuildSummary(c.state, c.now())
}
