package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// SummaryScreen shows the result of a finished quiz.
type SummaryScreen struct {
	summary *session.SessionSummary
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.StatusProvider  = (*SummaryScreen)(nil)
	_ screen.EscapeHandler   = (*SummaryScreen)(nil)
)

func New(summary *session.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) HeaderStatus() string {
	if s.summary == nil {
		return ""
	}
	return s.summary.Subject
}

func (s *SummaryScreen) HandlesEscape() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// Headline returns the title line for an end reason.
func Headline(reason session.EndReason) string {
	switch reason {
	case session.EndCompleted:
		return "Quiz complete!"
	case session.EndTimeExpired:
		return "Time's up!"
	case session.EndQuit:
		return "Quiz ended early"
	case session.EndNoQuestions:
		return "Out of questions"
	default:
		return "Quiz over"
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(Headline(sum.Reason))

	score := lipgloss.NewStyle().
		Foreground(theme.ArcadeCyan).
		Bold(true).
		Render(fmt.Sprintf("%d / %d", sum.Score, sum.TotalQuestions))

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60

	rows := []struct{ label, value string }{
		{"Subject", sum.Subject},
		{"Answered", fmt.Sprintf("%d of %d", sum.Answered, sum.TotalQuestions)},
		{"Accuracy", fmt.Sprintf("%.0f%%", sum.Accuracy()*100)},
		{"Final level", theme.LevelColors[sum.FinalLevel].Render(sum.FinalLevel.String())},
		{"Time", fmt.Sprintf("%d:%02d", mins, secs)},
	}
	var stats strings.Builder
	for _, r := range rows {
		stats.WriteString(lipgloss.NewStyle().Width(14).Foreground(theme.TextDim).Render(r.label))
		stats.WriteString(theme.Body.Render(r.value))
		stats.WriteString("\n")
	}

	bar := components.CountBar("", sum.Score, sum.TotalQuestions, cw-8)

	card := components.ArcadeCard(lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		score,
		"",
		bar.View(),
		"",
		strings.TrimSuffix(stats.String(), "\n"),
	), cw)

	button := components.ArcadeButton("HOME", true, cw-4)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, card, "", button))
}
