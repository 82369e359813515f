package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/router"
	sessionscreen "github.com/abhisek/examprep/internal/screens/session"
	"github.com/abhisek/examprep/internal/screens/setup"
	"github.com/abhisek/examprep/internal/session"
)

func testDeps(t *testing.T) sessionscreen.Deps {
	t.Helper()
	var qs []bank.Question
	for i, lvl := range bank.Levels {
		qs = append(qs, bank.Question{
			ID: lvl.String(), Subject: "GK", Difficulty: lvl, Text: "q?",
			Options: [4]string{"a", "b", "c", "d"}, Correct: bank.Labels[i],
		})
	}
	b, err := bank.New(qs)
	require.NoError(t, err)
	return sessionscreen.Deps{Bank: b}
}

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return updated.(AppModel)
}

func TestApp_TooSmall(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(t)})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, updated.(AppModel).render(), "Terminal too small")
}

func TestApp_HeaderAndFooter(t *testing.T) {
	m := sized(newAppModel(Options{Deps: testDeps(t)}))
	content := m.render()
	assert.Contains(t, content, "ExamPrep")
	assert.Contains(t, content, "Home")
	assert.Contains(t, content, "Navigate")
}

func TestApp_Escape(t *testing.T) {
	m := sized(newAppModel(Options{Deps: testDeps(t)}))
	m.router.Push(setup.New(testDeps(t)))
	require.Equal(t, 2, m.router.Depth())

	// Setup handles esc itself and asks for the pop.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, router.PopScreenMsg{}, msg)
	m.Update(msg)
	assert.Equal(t, 1, m.router.Depth())

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc on the root screen does nothing")
}

func TestApp_StartOpensQuiz(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(t), Start: &session.Config{Subject: "GK", TotalQuestions: 30}})
	m.Init()
	assert.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &sessionscreen.SessionScreen{}, m.router.Active())
	assert.Equal(t, "Quiz", sized(m).router.Active().Title())
}

func TestRun_RejectsInvalidStart(t *testing.T) {
	err := Run(Options{Deps: testDeps(t), Start: &session.Config{Subject: "Nope", TotalQuestions: 30}})
	assert.ErrorIs(t, err, session.ErrInvalidConfiguration)
}
