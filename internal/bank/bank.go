package bank

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when two records share an id.
var ErrDuplicateID = errors.New("duplicate question id")

// Filter selects questions from a bank. Zero-valued fields do not constrain.
type Filter struct {
	Subject string

	// Level restricts matches to one difficulty when non-nil.
	Level *Level

	ExcludeIDs map[string]struct{}

	// ExcludeConcepts drops questions whose concept tag is in the set.
	// Untagged questions are never excluded by concept.
	ExcludeConcepts map[string]struct{}
}

// Bank is an in-memory, read-only question collection. A Bank is safe to
// share between any number of sessions since nothing mutates it after New.
type Bank struct {
	questions []Question
	byID      map[string]int
	bySubject map[string][]int
	subjects  []string
}

// New builds a Bank from the given records. Subjects keep the order in which
// they first appear. Duplicate ids are rejected.
func New(questions []Question) (*Bank, error) {
	b := &Bank{
		questions: make([]Question, len(questions)),
		byID:      make(map[string]int, len(questions)),
		bySubject: make(map[string][]int),
	}
	copy(b.questions, questions)

	for i, q := range b.questions {
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, q.ID)
		}
		b.byID[q.ID] = i
		if _, seen := b.bySubject[q.Subject]; !seen {
			b.subjects = append(b.subjects, q.Subject)
		}
		b.bySubject[q.Subject] = append(b.bySubject[q.Subject], i)
	}
	return b, nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Subjects returns the distinct subjects present in the bank.
func (b *Bank) Subjects() []string {
	out := make([]string, len(b.subjects))
	copy(out, b.subjects)
	return out
}

// HasSubject reports whether at least one question carries the subject.
func (b *Bank) HasSubject(subject string) bool {
	_, ok := b.bySubject[subject]
	return ok
}

// ByID looks up a question by id.
func (b *Bank) ByID(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// ByConcept returns the questions of a subject tagged with the concept.
func (b *Bank) ByConcept(subject, concept string) []Question {
	var out []Question
	for _, i := range b.bySubject[subject] {
		if b.questions[i].Concept == concept {
			out = append(out, b.questions[i])
		}
	}
	return out
}

// LevelCounts returns the number of questions per level for a subject.
func (b *Bank) LevelCounts(subject string) map[Level]int {
	counts := make(map[Level]int, len(Levels))
	for _, i := range b.bySubject[subject] {
		counts[b.questions[i].Difficulty]++
	}
	return counts
}

// QuestionsMatching returns every question satisfying f. The order of the
// result is unspecified and an empty result is not an error.
func (b *Bank) QuestionsMatching(f Filter) []Question {
	var out []Question
	for _, i := range b.bySubject[f.Subject] {
		q := b.questions[i]
		if f.Level != nil && q.Difficulty != *f.Level {
			continue
		}
		if _, used := f.ExcludeIDs[q.ID]; used {
			continue
		}
		if q.Concept != "" {
			if _, used := f.ExcludeConcepts[q.Concept]; used {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}
