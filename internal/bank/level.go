package bank

import "strings"

// Level is a question difficulty. Levels are ordered: Easy < Medium < Hard.
type Level int

const (
	LevelEasy Level = iota
	LevelMedium
	LevelHard
)

// Levels lists every difficulty level in ascending order.
var Levels = []Level{LevelEasy, LevelMedium, LevelHard}

// LowestLevel and HighestLevel bound the level set.
const (
	LowestLevel  = LevelEasy
	HighestLevel = LevelHard
)

// String returns the display label for the level.
func (l Level) String() string {
	switch l {
	case LevelMedium:
		return "Medium"
	case LevelHard:
		return "Hard"
	default:
		return "Easy"
	}
}

// Valid reports whether l is a member of the level set.
func (l Level) Valid() bool {
	return l >= LowestLevel && l <= HighestLevel
}

// Next returns the level above l. The second return value is false
// when l is already the highest level.
func (l Level) Next() (Level, bool) {
	if l >= HighestLevel {
		return HighestLevel, false
	}
	return l + 1, true
}

// ParseLevel maps a difficulty label onto the level set.
// Matching is case-insensitive; empty or unrecognized labels map to Easy.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium", "moderate", "intermediate":
		return LevelMedium
	case "hard", "difficult", "advanced":
		return LevelHard
	default:
		return LevelEasy
	}
}
