package session

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.ctrl == nil || (s.cycle == nil && s.feedback == nil):
		return centered(width, theme.Hint).Render("\n\n\n  Preparing your quiz...")
	case s.confirm != nil:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.confirm.View())
	}
	return s.renderQuestion(width)
}

func centered(width int, style lipgloss.Style) lipgloss.Style {
	return style.Width(width).Align(lipgloss.Center)
}

// formatClock renders a duration as m:ss, never negative.
func formatClock(d time.Duration) string {
	d = max(d, 0).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (s *SessionScreen) renderQuestion(width int) string {
	st := s.ctrl.State()
	inner := min(width-8, 76)

	var b strings.Builder

	ordinal := st.Answered + 1
	if s.feedback != nil {
		ordinal = st.Answered
	}
	info := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Q %d/%d   Score %d   ", ordinal, st.TotalQuestions, st.Score)) +
		theme.LevelColors[st.Level].Render(st.Level.String())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, info))
	b.WriteString("\n\n")

	progress := components.CountBar("Questions", st.Answered, st.TotalQuestions, inner)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, progress.View()))
	b.WriteString("\n")

	timeBar := components.NewProgressBar("Time left", float64(s.remaining)/float64(st.TimeLimit), inner)
	timeBar.Suffix = formatClock(s.remaining)
	switch {
	case s.remaining < sess.TimePerQuestion:
		timeBar.Fill = theme.TimerLow
	case s.remaining < 5*sess.TimePerQuestion:
		timeBar.Fill = lipgloss.NewStyle().Background(theme.Warning)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, timeBar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner))))
	b.WriteString("\n\n")

	s.choice.Width = inner
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	if s.feedback != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width, inner))
	}
	return b.String()
}

func (s *SessionScreen) renderFeedback(width, inner int) string {
	fb := s.feedback
	var b strings.Builder

	switch {
	case fb.Correct:
		b.WriteString(centered(width, theme.Correct).Render("Correct!"))
	case fb.Chosen == sess.NoAnswer:
		b.WriteString(centered(width, theme.Incorrect).Render("Skipped"))
	default:
		b.WriteString(centered(width, theme.Incorrect).Render("Not quite"))
	}
	if !fb.Correct {
		b.WriteString("\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim)).Render(
			fmt.Sprintf("Correct answer: %s) %s", fb.CorrectLabel, fb.Question.Option(fb.CorrectLabel))))
	}
	b.WriteString("\n")

	if adv := fb.Advancement; adv != nil {
		b.WriteString("\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)).Render("Level up!"))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Body).Render(
			fmt.Sprintf("Three in a row: %s → %s", adv.From, adv.To)))
		b.WriteString("\n")
	}

	switch {
	case s.explaining:
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint).Render("Asking the tutor..."))
		b.WriteString("\n")
	case s.explainErr != "":
		b.WriteString("\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Error)).Render(s.explainErr))
		b.WriteString("\n")
	case s.explanation != nil:
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderExplanation(s.explanation.Explanation, s.explanation.ChosenMistake, s.explanation.Tip, inner)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "Press any key for the next question"
	if s.canExplain() && s.explanation == nil && !s.explaining {
		hint += ", E to explain"
	}
	b.WriteString(centered(width, theme.Hint).Render(hint))
	return b.String()
}

func renderExplanation(explanation, mistake, tip string, width int) string {
	parts := []string{theme.Body.Render(explanation)}
	if mistake != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.TextDim).Render(mistake))
	}
	if tip != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Accent).Render("Tip: "+tip))
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 1).
		Render(strings.Join(parts, "\n"))
}

func renderError(width int, errMsg string) string {
	return centered(width, lipgloss.NewStyle().Foreground(theme.Error)).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
