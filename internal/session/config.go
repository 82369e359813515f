package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/examprep/internal/bank"
)

var (
	// ErrInvalidConfiguration rejects a session before any state exists.
	ErrInvalidConfiguration = errors.New("invalid session configuration")

	// ErrNoQuestionsAvailable means the bank has no record at all for the
	// session subject. It ends the session.
	ErrNoQuestionsAvailable = errors.New("no questions available")

	ErrSessionEnded     = errors.New("session has ended")
	ErrAwaitingAnswer   = errors.New("current question has not been answered")
	ErrNoActiveQuestion = errors.New("no question awaiting an answer")
)

// AllowedQuestionCounts are the session lengths an operator may choose.
var AllowedQuestionCounts = []int{30, 50, 100}

// Config is everything the operator chooses before a session starts.
type Config struct {
	Subject        string
	TotalQuestions int
}

// ValidateConfig checks cfg against the bank's subjects and the allowed
// question counts.
func ValidateConfig(cfg Config, b *bank.Bank) error {
	if !slices.Contains(AllowedQuestionCounts, cfg.TotalQuestions) {
		return fmt.Errorf("%w: question count %d not in %v", ErrInvalidConfiguration, cfg.TotalQuestions, AllowedQuestionCounts)
	}
	if b == nil || !b.HasSubject(cfg.Subject) {
		return fmt.Errorf("%w: unknown subject %q", ErrInvalidConfiguration, cfg.Subject)
	}
	return nil
}
