package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/store"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// PageSize is how many past sessions are listed.
const PageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen lists finished sessions, newest first. Enter expands a row
// into its answers.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionRecord
	answers   map[string][]store.AnswerRecord
	selected  int
	expanded  map[string]bool
	loaded    bool
	errMsg    string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerRecord),
		expanded:  make(map[string]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	if repo == nil {
		return func() tea.Msg { return historyLoadedMsg{} }
	}
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: PageSize})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands or collapses the selected row, loading its answers the
// first time.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	id := s.sessions[s.selected].SessionID
	s.expanded[id] = !s.expanded[id]
	if !s.expanded[id] || s.eventRepo == nil {
		return nil
	}
	if _, ok := s.answers[id]; ok {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryAnswers(context.Background(), id)
		return answersLoadedMsg{SessionID: id, Answers: answers, Err: err}
	}
}

// AnswerLine formats the n-th answer of a session: level, chosen label and
// a mark, plus the right label when the answer was wrong.
func AnswerLine(n int, a store.AnswerRecord) string {
	chosen := a.Chosen
	if chosen == "" {
		chosen = "-"
	}
	line := fmt.Sprintf("%3d. %-6s  %s ", n, a.Level, chosen)
	if a.Correct {
		return line + "✓"
	}
	return line + "✗ (" + a.CorrectLabel + ")"
}

// ReasonLabel is the short display form of a stored end reason.
func ReasonLabel(reason string) string {
	switch reason {
	case "time_expired":
		return "time up"
	case "no_questions":
		return "no questions"
	default:
		return reason
	}
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	switch {
	case s.errMsg != "":
		return dim.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return dim.Render("\n\n  Loading history...")
	case len(s.sessions) == 0:
		return dim.Italic(true).Render("\n\n  No quizzes yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, rec := range s.sessions {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-12s %3d/%-3d  %-6s  %d:%02d  %s",
			prefix,
			rec.Timestamp.Local().Format("Jan 02 15:04"),
			truncate(rec.Subject, 12),
			rec.Score, rec.TotalQuestions,
			rec.FinalLevel,
			rec.DurationSecs/60, rec.DurationSecs%60,
			ReasonLabel(rec.EndReason))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[rec.SessionID] {
			b.WriteString(s.renderDetails(rec.SessionID, width))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderDetails(sessionID string, width int) string {
	detail := lipgloss.NewStyle().Foreground(theme.TextDim)
	answers, ok := s.answers[sessionID]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, detail.Italic(true).Render("    loading...")) + "\n"
	}
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, detail.Italic(true).Render("    no answers recorded")) + "\n"
	}

	var b strings.Builder
	for i, a := range answers {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detail.Render("  "+AnswerLine(i+1, a))))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
