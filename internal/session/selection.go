package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/examprep/internal/bank"
)

// Stage identifies how far selection had to relax its filters.
type Stage int

const (
	// StageStrict: subject, current level, unused id, concept unused this block.
	StageStrict Stage = iota + 1
	// StageAnyConcept: as strict, ignoring concepts.
	StageAnyConcept
	// StageAnyLevel: subject and unused id only.
	StageAnyLevel
	// StageReplacement: subject only; served questions may repeat.
	StageReplacement
)

// Stages lists the relaxation stages in evaluation order.
var Stages = []Stage{StageStrict, StageAnyConcept, StageAnyLevel, StageReplacement}

func (s Stage) String() string {
	switch s {
	case StageStrict:
		return "strict"
	case StageAnyConcept:
		return "any_concept"
	case StageAnyLevel:
		return "any_level"
	case StageReplacement:
		return "replacement"
	default:
		return "unknown"
	}
}

// Selector picks the next question for a session.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a Selector drawing from rng. A nil rng is replaced by
// a time-seeded source.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Selector{rng: rng}
}

// NewSeededSelector returns a Selector with a deterministic source.
func NewSeededSelector(seed uint64) *Selector {
	return NewSelector(rand.New(rand.NewPCG(seed, seed)))
}

// Candidates returns the pool a stage draws from. It has no side effects.
func Candidates(state *SessionState, b *bank.Bank, stage Stage) []bank.Question {
	f := bank.Filter{Subject: state.Subject}
	level := state.Level

	switch stage {
	case StageStrict:
		f.Level = &level
		f.ExcludeIDs = state.UsedIDs
		f.ExcludeConcepts = state.UsedConcepts
	case StageAnyConcept:
		f.Level = &level
		f.ExcludeIDs = state.UsedIDs
	case StageAnyLevel:
		f.ExcludeIDs = state.UsedIDs
	case StageReplacement:
	default:
		return nil
	}
	return b.QuestionsMatching(f)
}

// Next picks a question uniformly at random from the first non-empty stage
// pool. When the strict pool is empty the block's concept set is cleared.
// Next does not mark the question as used.
func (s *Selector) Next(state *SessionState, b *bank.Bank) (bank.Question, Stage, error) {
	for _, stage := range Stages {
		pool := Candidates(state, b, stage)
		if stage == StageStrict && len(pool) == 0 && len(state.UsedConcepts) > 0 {
			clear(state.UsedConcepts)
		}
		if len(pool) == 0 {
			continue
		}
		return pool[s.rng.IntN(len(pool))], stage, nil
	}
	return bank.Question{}, 0, fmt.Errorf("%w for subject %q", ErrNoQuestionsAvailable, state.Subject)
}
