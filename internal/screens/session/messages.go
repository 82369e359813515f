package session

import (
	"time"

	"github.com/abhisek/examprep/internal/explain"
)

// timerTickMsg drives the countdown once a second.
type timerTickMsg time.Time

// persistedMsg reports a finished store write.
type persistedMsg struct {
	What string
	Err  error
}

// explanationMsg carries the result of an explain request.
type explanationMsg struct {
	QuestionID  string
	Explanation *explain.Explanation
	Err         error
}
