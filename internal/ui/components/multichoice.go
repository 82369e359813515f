package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// MultiChoice shows a question's four options. Arrows move the cursor and
// enter picks it; a-d or 1-4 pick an option directly. Once an option is
// picked the component stops taking input until Reveal or Reset.
type MultiChoice struct {
	Question bank.Question
	Selected int
	Width    int

	picked   bool
	chosen   bank.Label
	revealed bool
}

func NewMultiChoice(q bank.Question, width int) MultiChoice {
	return MultiChoice{Question: q, Width: width}
}

// Picked returns the chosen label once the learner has committed.
func (m MultiChoice) Picked() (bank.Label, bool) {
	return m.chosen, m.picked
}

// Reveal marks the correct option and, when different, the chosen one.
// chosen may be empty when the question timed out or was skipped.
func (m MultiChoice) Reveal(chosen bank.Label) MultiChoice {
	m.picked = true
	m.chosen = chosen
	m.revealed = true
	return m
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.picked {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(bank.Labels)-1 {
			m.Selected++
		}
	case "enter":
		m.pick(m.Selected)
	default:
		if i := labelIndex(key); i >= 0 {
			m.pick(i)
		}
	}
	return m, nil
}

func (m *MultiChoice) pick(i int) {
	m.Selected = i
	m.picked = true
	m.chosen = bank.Labels[i]
}

// labelIndex maps a-d, A-D and 1-4 to an option index.
func labelIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	switch c := key[0]; {
	case c >= 'a' && c <= 'd':
		return int(c - 'a')
	case c >= 'A' && c <= 'D':
		return int(c - 'A')
	case c >= '1' && c <= '4':
		return int(c - '1')
	}
	return -1
}

func (m MultiChoice) View() string {
	var b strings.Builder
	text := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if m.Width > 0 {
		text = text.Width(m.Width)
	}
	b.WriteString(text.Render(m.Question.Text) + "\n\n")

	for i, l := range bank.Labels {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, l, m.Question.Option(l))

		var style lipgloss.Style
		switch {
		case m.revealed && l == m.Question.Correct:
			style = theme.Correct
			line += "  ✓"
		case m.revealed && l == m.chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
