package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []Question {
	return []Question{
		{ID: "1", Subject: "GK", Difficulty: LevelEasy, Concept: "History", Correct: LabelB},
		{ID: "2", Subject: "GK", Difficulty: LevelEasy, Concept: "Geography", Correct: LabelA},
		{ID: "3", Subject: "GK", Difficulty: LevelEasy, Concept: "History", Correct: LabelC},
		{ID: "4", Subject: "GK", Difficulty: LevelMedium, Concept: "", Correct: LabelD},
		{ID: "5", Subject: "Math", Difficulty: LevelHard, Concept: "Algebra", Correct: LabelA},
	}
}

func ids(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func set(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]Question{{ID: "1", Subject: "GK"}, {ID: "1", Subject: "Math"}})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestBank_Subjects(t *testing.T) {
	b, err := New(sampleQuestions())
	require.NoError(t, err)

	assert.Equal(t, []string{"GK", "Math"}, b.Subjects())
	assert.True(t, b.HasSubject("Math"))
	assert.False(t, b.HasSubject("Physics"))
	assert.Equal(t, 5, b.Len())

	subjects := b.Subjects()
	subjects[0] = "changed"
	assert.Equal(t, "GK", b.Subjects()[0])
}

func TestBank_Lookups(t *testing.T) {
	b, err := New(sampleQuestions())
	require.NoError(t, err)

	q, ok := b.ByID("2")
	require.True(t, ok)
	assert.Equal(t, "Geography", q.Concept)

	_, ok = b.ByID("99")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"1", "3"}, ids(b.ByConcept("GK", "History")))
	assert.Empty(t, b.ByConcept("Math", "History"))

	counts := b.LevelCounts("GK")
	assert.Equal(t, 3, counts[LevelEasy])
	assert.Equal(t, 1, counts[LevelMedium])
	assert.Equal(t, 0, counts[LevelHard])
}

func TestBank_QuestionsMatching(t *testing.T) {
	b, err := New(sampleQuestions())
	require.NoError(t, err)

	easy := LevelEasy
	medium := LevelMedium

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"subject only", Filter{Subject: "GK"}, []string{"1", "2", "3", "4"}},
		{"unknown subject", Filter{Subject: "Physics"}, nil},
		{"level", Filter{Subject: "GK", Level: &easy}, []string{"1", "2", "3"}},
		{"level medium", Filter{Subject: "GK", Level: &medium}, []string{"4"}},
		{"exclude ids", Filter{Subject: "GK", Level: &easy, ExcludeIDs: set("1")}, []string{"2", "3"}},
		{"exclude concept", Filter{Subject: "GK", ExcludeConcepts: set("History")}, []string{"2", "4"}},
		{"untagged never excluded", Filter{Subject: "GK", ExcludeConcepts: set("")}, []string{"1", "2", "3", "4"}},
		{"everything excluded", Filter{Subject: "GK", Level: &easy, ExcludeIDs: set("2"), ExcludeConcepts: set("History")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.QuestionsMatching(tt.filter)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"Easy":         LevelEasy,
		"medium":       LevelMedium,
		" HARD ":       LevelHard,
		"Moderate":     LevelMedium,
		"advanced":     LevelHard,
		"":             LevelEasy,
		"impossible":   LevelEasy,
		"intermediate": LevelMedium,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLevel_Next(t *testing.T) {
	next, ok := LevelEasy.Next()
	assert.True(t, ok)
	assert.Equal(t, LevelMedium, next)

	next, ok = LevelHard.Next()
	assert.False(t, ok)
	assert.Equal(t, LevelHard, next)

	assert.True(t, LevelMedium.Valid())
	assert.False(t, Level(7).Valid())
	assert.Equal(t, "Hard", LevelHard.String())
}

func TestQuestion_Option(t *testing.T) {
	q := Question{Options: [4]string{"w", "x", "y", "z"}}
	assert.Equal(t, "y", q.Option(LabelC))
	assert.Equal(t, "", q.Option(Label("E")))
	assert.Equal(t, -1, Label("a").Index())
}
