package session

import (
	"time"

	"github.com/abhisek/examprep/internal/bank"
)

// BlockSize is the number of answers evaluated together for a level-up.
const BlockSize = 3

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseActive SessionPhase = iota // Serving questions
	PhaseEnded                      // No further input accepted
)

// EndReason records why a session stopped.
type EndReason string

const (
	EndTimeExpired EndReason = "time_expired"
	EndCompleted   EndReason = "completed"
	EndNoQuestions EndReason = "no_questions"
	EndQuit        EndReason = "quit"
)

// SessionState is the mutable state of one quiz attempt. It belongs to a
// single session and must not be shared between sessions.
type SessionState struct {
	// ID is the UUID for this session.
	ID string

	Subject        string
	TotalQuestions int

	// Answered is the count of submitted answers, including "no answer".
	Answered int

	// Score is the count of correct answers.
	Score int

	// Level is the current difficulty. It never decreases.
	Level bank.Level

	// Block holds the outcomes of the current block, at most BlockSize long.
	Block []bool

	// UsedIDs holds every question id served in this session.
	UsedIDs map[string]struct{}

	// UsedConcepts holds the concept tags served in the current block.
	UsedConcepts map[string]struct{}

	StartTime time.Time
	TimeLimit time.Duration

	// Current is the question awaiting an answer (nil between questions).
	Current *bank.Question

	// CurrentStage is the selection stage that produced Current.
	CurrentStage Stage

	// QuestionStartTime is when Current was served.
	QuestionStartTime time.Time

	Phase     SessionPhase
	EndReason EndReason
	EndedAt   time.Time
}

// NewSessionState creates the state for a fresh session starting at now.
func NewSessionState(id string, cfg Config, now time.Time) *SessionState {
	return &SessionState{
		ID:             id,
		Subject:        cfg.Subject,
		TotalQuestions: cfg.TotalQuestions,
		Level:          bank.LowestLevel,
		Block:          make([]bool, 0, BlockSize),
		UsedIDs:        make(map[string]struct{}),
		UsedConcepts:   make(map[string]struct{}),
		StartTime:      now,
		TimeLimit:      TimeLimit(cfg.TotalQuestions),
		Phase:          PhaseActive,
	}
}

// Ended reports whether the session has stopped accepting input.
func (s *SessionState) Ended() bool {
	return s.Phase == PhaseEnded
}

func (s *SessionState) end(reason EndReason, now time.Time) {
	if s.Phase == PhaseEnded {
		return
	}
	s.Phase = PhaseEnded
	s.EndReason = reason
	s.EndedAt = now
	s.Current = nil
}
