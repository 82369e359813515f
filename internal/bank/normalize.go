package bank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is returned when a source lacks a column every record needs.
var ErrMissingColumn = errors.New("missing required column")

// Accepted column names per field, in priority order. The first name present
// in a source wins for the whole source.
var (
	idColumns         = []string{"question_id", "id"}
	subjectColumns    = []string{"subject"}
	difficultyColumns = []string{"difficulty", "difficulty_level", "level"}
	conceptColumns    = []string{"concept", "concept_tag", "tag"}
	textColumns       = []string{"question", "question_text", "text"}
	correctColumns    = []string{"correct_option", "correct_answer", "correct", "answer"}
	optionColumns     = [4][]string{
		{"option_a", "a", "optiona"},
		{"option_b", "b", "optionb"},
		{"option_c", "c", "optionc"},
		{"option_d", "d", "optiond"},
	}
)

// record is one raw row keyed by normalized column name.
type record map[string]string

func (r record) keys() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	return out
}

// columns maps canonical fields onto the column names used by one source.
// An empty name means the source has no such column.
type columns struct {
	id         string
	subject    string
	difficulty string
	concept    string
	text       string
	correct    string
	options    [4]string
}

// normalizeKey lower-cases a column name and joins words with underscores.
func normalizeKey(k string) string {
	k = strings.TrimPrefix(k, "\ufeff")
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.Join(strings.Fields(k), "_")
}

// resolveColumns picks, for each canonical field, the first accepted synonym
// present in keys, and fails when subject or question text has no column.
func resolveColumns(keys []string) (columns, error) {
	c := pickColumns(keys)
	if c.subject == "" {
		return columns{}, fmt.Errorf("%w: subject", ErrMissingColumn)
	}
	if c.text == "" {
		return columns{}, fmt.Errorf("%w: question", ErrMissingColumn)
	}
	return c, nil
}

func pickColumns(keys []string) columns {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[normalizeKey(k)] = true
	}
	pick := func(names []string) string {
		for _, n := range names {
			if present[n] {
				return n
			}
		}
		return ""
	}

	c := columns{
		id:         pick(idColumns),
		subject:    pick(subjectColumns),
		difficulty: pick(difficultyColumns),
		concept:    pick(conceptColumns),
		text:       pick(textColumns),
		correct:    pick(correctColumns),
	}
	for i := range c.options {
		c.options[i] = pick(optionColumns[i])
	}
	return c
}

// question converts a raw record into a Question. Missing values become empty
// strings; a missing difficulty column or value maps to Easy. Records without
// an id get "<source>#<row>" so they stay addressable.
func (c columns) question(r record, source string, row int) Question {
	get := func(col string) string {
		if col == "" {
			return ""
		}
		return strings.TrimSpace(r[col])
	}

	q := Question{
		ID:         get(c.id),
		Subject:    get(c.subject),
		Difficulty: ParseLevel(get(c.difficulty)),
		Concept:    get(c.concept),
		Text:       get(c.text),
		Correct:    Label(get(c.correct)),
	}
	for i, col := range c.options {
		q.Options[i] = get(col)
	}
	if q.ID == "" {
		q.ID = fmt.Sprintf("%s#%d", source, row)
	}
	return q
}
