// Package setup is the screen where a quiz is configured: pick a subject,
// then a length.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	sessionscreen "github.com/abhisek/examprep/internal/screens/session"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

type phase int

// subjectChosenMsg switches to the length menu. The switch happens in Update
// so the menu that emitted it is not written back over the new one.
type subjectChosenMsg struct {
	subject string
}

const (
	phaseSubject phase = iota
	phaseCount
)

// SetupScreen collects a session.Config and replaces itself with the quiz.
type SetupScreen struct {
	deps sessionscreen.Deps

	phase   phase
	filter  components.TextInput
	menu    components.Menu
	subject string
	errMsg  string
}

var (
	_ screen.Screen          = (*SetupScreen)(nil)
	_ screen.KeyHintProvider = (*SetupScreen)(nil)
	_ screen.StatusProvider  = (*SetupScreen)(nil)
	_ screen.EscapeHandler   = (*SetupScreen)(nil)
)

func New(deps sessionscreen.Deps) *SetupScreen {
	s := &SetupScreen{
		deps:   deps,
		filter: components.NewTextInput("Filter:", "type to narrow subjects", 40),
	}
	s.refreshSubjects()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.filter.Init()
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

func (s *SetupScreen) HeaderStatus() string {
	return s.subject
}

func (s *SetupScreen) HandlesEscape() bool {
	return true
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.phase == phaseCount {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Length"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Change subject"},
		}
	}
	return []layout.KeyHint{
		{Key: "type", Description: "Filter"},
		{Key: "↑↓", Description: "Subject"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Esc", Description: "Back"},
	}
}

// Subjects returns the bank's subjects containing filter, case-insensitively.
func Subjects(b *bank.Bank, filter string) []string {
	if b == nil {
		return nil
	}
	filter = strings.ToLower(strings.TrimSpace(filter))
	var out []string
	for _, subj := range b.Subjects() {
		if filter == "" || strings.Contains(strings.ToLower(subj), filter) {
			out = append(out, subj)
		}
	}
	return out
}

// levelDetail summarizes a subject's questions per level, e.g. "E 12 · M 8 · H 4".
func levelDetail(counts map[bank.Level]int) string {
	parts := make([]string, 0, len(bank.Levels))
	for _, l := range bank.Levels {
		parts = append(parts, fmt.Sprintf("%s %d", l.String()[:1], counts[l]))
	}
	return strings.Join(parts, " · ")
}

func (s *SetupScreen) refreshSubjects() {
	subjects := Subjects(s.deps.Bank, s.filter.Value())
	items := make([]components.MenuItem, 0, len(subjects))
	for _, subj := range subjects {
		items = append(items, components.MenuItem{
			Label:  subj,
			Detail: levelDetail(s.deps.Bank.LevelCounts(subj)),
			Action: func() tea.Cmd {
				return func() tea.Msg { return subjectChosenMsg{subject: subj} }
			},
		})
	}
	s.menu = components.NewMenu(items)
}

func (s *SetupScreen) chooseSubject(subject string) {
	s.subject = subject
	s.phase = phaseCount
	s.errMsg = ""

	items := make([]components.MenuItem, 0, len(session.AllowedQuestionCounts))
	for _, n := range session.AllowedQuestionCounts {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d questions", n),
			Detail: fmt.Sprintf("%d min", int(session.TimeLimit(n).Minutes())),
			Action: func() tea.Cmd { return s.start(n) },
		})
	}
	s.menu = components.NewMenu(items)
}

func (s *SetupScreen) start(total int) tea.Cmd {
	cfg := session.Config{Subject: s.subject, TotalQuestions: total}
	if err := session.ValidateConfig(cfg, s.deps.Bank); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	next := sessionscreen.New(s.deps, cfg)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(subjectChosenMsg); ok {
		if s.phase == phaseSubject {
			s.chooseSubject(msg.subject)
		}
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.phase == phaseSubject {
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		if s.phase == phaseCount {
			s.phase = phaseSubject
			s.subject = ""
			s.errMsg = ""
			s.refreshSubjects()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "down", "home", "end", "enter":
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(kmsg)
		return s, cmd
	}

	if s.phase != phaseSubject {
		return s, nil
	}
	before := s.filter.Value()
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(kmsg)
	if s.filter.Value() != before {
		s.refreshSubjects()
	}
	return s, cmd
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	if s.phase == phaseSubject {
		b.WriteString(theme.Title.Render("Choose a subject"))
		b.WriteString("\n\n")
		b.WriteString(s.filter.View())
		b.WriteString("\n\n")
		if len(s.menu.Items) == 0 {
			b.WriteString(theme.Hint.Render("No subject matches."))
		} else {
			b.WriteString(s.menu.View())
		}
	} else {
		b.WriteString(theme.Title.Render(s.subject))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d seconds per question", int(session.TimePerQuestion.Seconds()))))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	card := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
