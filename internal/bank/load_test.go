package bank

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	src := "\ufeffQuestion ID,Subject,Difficulty Level,Concept,Question,Option A,Option B,Option C,Option D,Correct Option\n" +
		"1,GK,Easy,History,Who built the Taj Mahal?,Akbar,Shah Jahan,Babur,Humayun,B\n" +
		"2,GK,Hard,,Capital of Peru?,Lima,Quito,Bogota,La Paz,A\n" +
		"3,GK,weird,Geography,Short row\n"

	qs, err := ParseCSV(strings.NewReader(src), "gk.csv")
	require.NoError(t, err)
	require.Len(t, qs, 3)

	assert.Equal(t, Question{
		ID:         "1",
		Subject:    "GK",
		Difficulty: LevelEasy,
		Concept:    "History",
		Text:       "Who built the Taj Mahal?",
		Options:    [4]string{"Akbar", "Shah Jahan", "Babur", "Humayun"},
		Correct:    LabelB,
	}, qs[0])

	assert.Equal(t, LevelHard, qs[1].Difficulty)
	assert.Equal(t, "", qs[1].Concept)

	// Unrecognized difficulty and missing cells are normalised, not dropped.
	assert.Equal(t, LevelEasy, qs[2].Difficulty)
	assert.Equal(t, "Short row", qs[2].Text)
	assert.Equal(t, [4]string{}, qs[2].Options)
	assert.Equal(t, Label(""), qs[2].Correct)
}

func TestParseCSV_NoDifficultyColumn(t *testing.T) {
	src := "id,subject,question,a,b,c,d,answer\n" +
		"m1,Math,2+2?,3,4,5,6,B\n" +
		"m2,Math,3+3?,6,7,8,9,A\n"

	qs, err := ParseCSV(strings.NewReader(src), "math.csv")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	for _, q := range qs {
		assert.Equal(t, LevelEasy, q.Difficulty)
		assert.Equal(t, "", q.Concept)
	}
	assert.Equal(t, "4", qs[0].Option(LabelB))
	assert.Equal(t, LabelA, qs[1].Correct)
}

func TestParseCSV_SyntheticIDs(t *testing.T) {
	src := "subject,question,level\nGK,First,medium\nGK,Second,\n"

	qs, err := ParseCSV(strings.NewReader(src), "gk.csv")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "gk.csv#1", qs[0].ID)
	assert.Equal(t, "gk.csv#2", qs[1].ID)
	assert.Equal(t, LevelMedium, qs[0].Difficulty)
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), "empty.csv")
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = ParseCSV(strings.NewReader("id,question\n1,Hi\n"), "nosubject.csv")
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ParseCSV(strings.NewReader("id,subject\n1,GK\n"), "notext.csv")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseJSON(t *testing.T) {
	src := `{
		"version": "1.2.0",
		"questions": [
			{"id": 7, "subject": "Science", "difficulty": "Medium", "concept": "Physics",
			 "question": "Unit of force?", "options": ["Newton", "Joule", "Watt", "Pascal"], "correct": "A"},
			{"id": "8", "subject": "Science", "question": "Water boils at?",
			 "option_a": 90, "option_b": 100, "option_c": 110, "option_d": null, "correct_option": "B"}
		]
	}`

	qs, err := ParseJSON(strings.NewReader(src), "science.json")
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "7", qs[0].ID)
	assert.Equal(t, LevelMedium, qs[0].Difficulty)
	assert.Equal(t, [4]string{"Newton", "Joule", "Watt", "Pascal"}, qs[0].Options)
	assert.Equal(t, LabelA, qs[0].Correct)

	assert.Equal(t, "8", qs[1].ID)
	assert.Equal(t, LevelEasy, qs[1].Difficulty)
	assert.Equal(t, [4]string{"90", "100", "110", ""}, qs[1].Options)
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrEmptySource},
		{"unsupported major", `{"version": "v2.0.0", "questions": []}`, ErrUnsupportedVersion},
		{"malformed version", `{"version": "one", "questions": []}`, ErrBadVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tt.src), "bank.json")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ParseJSON(strings.NewReader(`{"items": []}`), "bank.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")

	_, err = ParseJSON(strings.NewReader(`{"questions": [{"question": "no subject"}]}`), "bank.json")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseYAML(t *testing.T) {
	src := `
version: 1
questions:
  - id: h1
    subject: History
    level: hard
    tag: Empires
    question: First Mughal emperor?
    options: [Babur, Akbar, Humayun, Aurangzeb]
    answer: A
  - subject: History
    question: Untagged
`
	qs, err := ParseYAML(strings.NewReader(src), "history.yaml")
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "h1", qs[0].ID)
	assert.Equal(t, LevelHard, qs[0].Difficulty)
	assert.Equal(t, "Empires", qs[0].Concept)
	assert.Equal(t, "Babur", qs[0].Option(LabelA))

	assert.Equal(t, "history.yaml#2", qs[1].ID)
	assert.Equal(t, "", qs[1].Concept)
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, checkVersion(""))
	assert.NoError(t, checkVersion("v1"))
	assert.NoError(t, checkVersion("1.4.2"))
	assert.ErrorIs(t, checkVersion("2"), ErrUnsupportedVersion)
	assert.ErrorIs(t, checkVersion("v1.x"), ErrBadVersion)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "gk.csv", "id,subject,question,correct\n1,GK,Q1,A\n2,GK,Q2,B\n")
	jsonPath := writeFile(t, dir, "math.json", `{"questions":[{"id":"m1","subject":"Math","question":"Q3"}]}`)
	yamlPath := writeFile(t, dir, "sci.yml", "questions:\n  - id: s1\n    subject: Science\n    question: Q4\n")

	b, err := LoadFiles(context.Background(), csvPath, jsonPath, yamlPath)
	require.NoError(t, err)

	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []string{"GK", "Math", "Science"}, b.Subjects())
}

func TestLoadFiles_Errors(t *testing.T) {
	_, err := LoadFiles(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)

	dir := t.TempDir()
	txt := writeFile(t, dir, "bank.txt", "nope")
	_, err = LoadFiles(context.Background(), txt)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	a := writeFile(t, dir, "a.csv", "id,subject,question\n1,GK,Q1\n")
	b := writeFile(t, dir, "b.csv", "id,subject,question\n1,GK,Q2\n")
	_, err = LoadFiles(context.Background(), a, b)
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = LoadFiles(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
