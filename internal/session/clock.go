package session

import "time"

// TimePerQuestion is the fixed time budget per question.
const TimePerQuestion = time.Minute

// TimeLimit returns the total time budget for n questions.
func TimeLimit(n int) time.Duration {
	return time.Duration(n) * TimePerQuestion
}

// Remaining returns the budget left at now. It is negative once overdrawn.
func Remaining(state *SessionState, now time.Time) time.Duration {
	return state.TimeLimit - now.Sub(state.StartTime)
}

// IsExpired reports whether no time remains at now.
func IsExpired(state *SessionState, now time.Time) bool {
	return Remaining(state, now) <= 0
}
