package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// renderStatsBar shows bank size, the last result and tutor availability.
func renderStatsBar(st stats, cw int, compact bool) string {
	bankStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	lastStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	tutorStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	bankText := fmt.Sprintf("◆ %d QUESTIONS · %d SUBJECTS", st.questions, st.subjects)
	if compact {
		bankText = fmt.Sprintf("◆%d/%d", st.questions, st.subjects)
	}

	last := dim.Render("★ NO QUIZZES YET")
	if st.hasLast {
		last = lastStyle.Render(fmt.Sprintf("★ LAST %d/%d %s", st.lastScore, st.lastTotal, strings.ToUpper(st.lastSubject)))
		if compact {
			last = lastStyle.Render(fmt.Sprintf("★%d/%d", st.lastScore, st.lastTotal))
		}
	}

	tutor := dim.Render("⚡ TUTOR OFF")
	if st.tutor != "" {
		tutor = tutorStyle.Render("⚡ TUTOR " + st.tutor)
	}

	sep := "  "
	if compact {
		sep = " "
	}
	line := strings.Join([]string{bankStyle.Render(bankText), last, tutor}, sep)
	if !compact {
		line = bankStyle.Render(bankText) + sep + last + "\n" + tutor
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

const buttonWidth = 22

// renderArcadeMenu draws each entry as a fixed-width button. Disabled
// entries are dimmed and never highlighted.
func renderArcadeMenu(menu components.Menu, cw int, compact bool) string {
	buttons := make([]string, 0, len(menu.Items))
	for i, item := range menu.Items {
		switch {
		case item.Disabled:
			buttons = append(buttons, lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(item.Label))
		case compact:
			style := lipgloss.NewStyle().Foreground(theme.Text)
			label := "  " + item.Label
			if i == menu.Selected {
				style = style.Foreground(theme.ArcadeYellow).Bold(true)
				label = "▸ " + item.Label
			}
			buttons = append(buttons, style.Render(label))
		default:
			buttons = append(buttons, components.ArcadeButton(item.Label, i == menu.Selected, buttonWidth))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}
