package session

import "github.com/abhisek/examprep/internal/bank"

// LevelAdvancement records a level transition for display purposes.
type LevelAdvancement struct {
	From bank.Level
	To   bank.Level
}

// RecordAnswer applies one answer outcome to the progression state: the score
// and the block buffer. A full block of correct answers moves the level up one
// step; any full block clears the buffer and the block's concept set. Levels
// never go down. Returns the advancement, or nil when the level is unchanged.
func RecordAnswer(state *SessionState, correct bool) *LevelAdvancement {
	if correct {
		state.Score++
	}
	state.Block = append(state.Block, correct)
	if len(state.Block) < BlockSize {
		return nil
	}

	perfect := true
	for _, ok := range state.Block {
		perfect = perfect && ok
	}
	state.Block = state.Block[:0]
	clear(state.UsedConcepts)

	if !perfect {
		return nil
	}
	next, ok := state.Level.Next()
	if !ok {
		return nil
	}
	adv := &LevelAdvancement{From: state.Level, To: next}
	state.Level = next
	return adv
}
