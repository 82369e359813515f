package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/store"
)

type fakeRepo struct {
	sessions    []store.SessionRecord
	answers     map[string][]store.AnswerRecord
	answerCalls int
	opts        store.QueryOpts
	err         error
}

func (f *fakeRepo) AppendSessionEvent(context.Context, store.SessionEventData) error { return nil }
func (f *fakeRepo) AppendAnswerEvent(context.Context, store.AnswerEventData) error   { return nil }
func (f *fakeRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return nil
}
func (f *fakeRepo) QuerySessionSummaries(_ context.Context, opts store.QueryOpts) ([]store.SessionRecord, error) {
	f.opts = opts
	return f.sessions, f.err
}
func (f *fakeRepo) QueryAnswers(_ context.Context, id string) ([]store.AnswerRecord, error) {
	f.answerCalls++
	return f.answers[id], nil
}

func answer(level, chosen, right string) store.AnswerRecord {
	return store.AnswerRecord{AnswerEventData: store.AnswerEventData{
		Level: level, Chosen: chosen, CorrectLabel: right, Correct: chosen == right,
	}}
}

func testRepo() *fakeRepo {
	ts := time.Date(2025, 5, 4, 18, 30, 0, 0, time.UTC)
	return &fakeRepo{
		sessions: []store.SessionRecord{
			{Sequence: 9, Timestamp: ts, SessionID: "s2", Subject: "GK", TotalQuestions: 30, QuestionsAnswered: 30, Score: 24, FinalLevel: "Hard", EndReason: "completed", DurationSecs: 1500},
			{Sequence: 4, Timestamp: ts.Add(-time.Hour), SessionID: "s1", Subject: "Mathematics and Reasoning", TotalQuestions: 50, QuestionsAnswered: 7, Score: 2, FinalLevel: "Easy", EndReason: "time_expired", DurationSecs: 3000},
		},
		answers: map[string][]store.AnswerRecord{
			"s2": {answer("Easy", "A", "A"), answer("Easy", "C", "C"), answer("Medium", "B", "D"), answer("Hard", "", "A")},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistoryScreen_List(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	assert.Contains(t, s.View(100, 30), "Loading")

	load(t, s)
	assert.Equal(t, PageSize, repo.opts.Limit)

	view := s.View(120, 30)
	assert.Contains(t, view, "24/30")
	assert.Contains(t, view, "Mathematics…")
	assert.Contains(t, view, "time up")
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)
	assert.Contains(t, s.View(100, 30), "No quizzes yet")
}

func TestHistoryScreen_Error(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("db locked")})
	load(t, s)
	assert.Contains(t, s.View(100, 30), "db locked")
}

func TestHistoryScreen_Expand(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(120, 30), "loading...")
	s.Update(cmd())

	view := s.View(120, 30)
	assert.Contains(t, view, "1. Easy    A ✓")
	assert.Contains(t, view, "3. Medium  B ✗ (D)")
	assert.Contains(t, view, "4. Hard    - ✗ (A)")

	// Collapse and expand again without another query.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.NotContains(t, s.View(120, 30), "Medium  B")
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, repo.answerCalls)

	// The second row has no stored answers.
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Contains(t, s.View(120, 30), "no answers recorded")
}

func TestHistoryScreen_Back(t *testing.T) {
	s := New(testRepo())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestAnswerLine(t *testing.T) {
	assert.Equal(t, " 12. Hard    C ✓", AnswerLine(12, answer("Hard", "C", "C")))
	assert.Equal(t, "  2. Easy    B ✗ (A)", AnswerLine(2, answer("Easy", "B", "A")))
	assert.Equal(t, "  3. Easy    - ✗ (D)", AnswerLine(3, answer("Easy", "", "D")))
}
