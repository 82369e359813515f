package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/screens/history"
	sessionscreen "github.com/abhisek/examprep/internal/screens/session"
	"github.com/abhisek/examprep/internal/screens/setup"
	"github.com/abhisek/examprep/internal/store"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
)

// stats is what the home screen shows above the menu.
type stats struct {
	subjects  int
	questions int
	tutor     string

	hasLast     bool
	lastScore   int
	lastTotal   int
	lastSubject string
}

// lastSessionMsg carries the most recent finished session, if any.
type lastSessionMsg struct {
	record *store.SessionRecord
	err    error
}

// HomeScreen is the root screen: banner, stats and the main menu.
type HomeScreen struct {
	deps  sessionscreen.Deps
	menu  components.Menu
	stats stats
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ router.RootRefresher   = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

func New(deps sessionscreen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	if deps.Bank != nil {
		h.stats.subjects = len(deps.Bank.Subjects())
		h.stats.questions = deps.Bank.Len()
	}
	if deps.Explainer != nil {
		h.stats.tutor = "ON"
		if p, ok := deps.Explainer.(interface{ Provider() string }); ok {
			h.stats.tutor = strings.ToUpper(p.Provider())
		}
	}

	items := []components.MenuItem{
		{
			Label:    "START QUIZ",
			Disabled: deps.Bank == nil || deps.Bank.Len() == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: setup.New(deps)}
				}
			},
		},
		{
			Label:    "HISTORY",
			Disabled: deps.EventRepo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(deps.EventRepo)}
				}
			},
		},
		{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadLast()
}

// Refresh reloads the last result when a quiz hands control back.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadLast()
}

func (h *HomeScreen) loadLast() tea.Cmd {
	repo := h.deps.EventRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: 1})
		if err != nil || len(recs) == 0 {
			return lastSessionMsg{err: err}
		}
		return lastSessionMsg{record: &recs[0]}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(lastSessionMsg); ok {
		if msg.err != nil && h.deps.Logger != nil {
			h.deps.Logger.Warn("load last session", zap.Error(msg.err))
		}
		if rec := msg.record; rec != nil {
			h.stats.hasLast = true
			h.stats.lastScore = rec.Score
			h.stats.lastTotal = rec.TotalQuestions
			h.stats.lastSubject = rec.Subject
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	// to estimate the terminal height.
	compact := layout.IsCompactHeight(height+8) || width < 100
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(compact),
		renderStatsBar(h.stats, cw, compact),
		renderArcadeMenu(h.menu, cw, compact),
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
