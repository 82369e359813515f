package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/session"
)

func testSummary() *session.SessionSummary {
	return &session.SessionSummary{
		SessionID:      "s1",
		Subject:        "GK",
		Score:          21,
		Answered:       28,
		TotalQuestions: 30,
		FinalLevel:     bank.LevelHard,
		Reason:         session.EndTimeExpired,
		Duration:       30 * time.Minute,
	}
}

func TestSummaryScreen_View(t *testing.T) {
	s := New(testSummary())
	assert.Equal(t, "Results", s.Title())
	assert.Equal(t, "GK", s.HeaderStatus())

	view := s.View(100, 40)
	for _, want := range []string{"Time's up!", "21 / 30", "28 of 30", "75%", "Hard", "30:00"} {
		assert.Contains(t, view, want)
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	assert.Empty(t, New(nil).View(80, 24))
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
	} {
		_, cmd := New(testSummary()).Update(key)
		require.NotNil(t, cmd, "key %s", key)
		assert.IsType(t, router.PopToRootMsg{}, cmd())
	}

	_, cmd := New(testSummary()).Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Nil(t, cmd)
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "Quiz complete!", Headline(session.EndCompleted))
	assert.Equal(t, "Quiz ended early", Headline(session.EndQuit))
	assert.Equal(t, "Out of questions", Headline(session.EndNoQuestions))
	assert.Equal(t, "Quiz over", Headline(""))
}
