package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// Button is a styled, pressable label.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" && b.OnPress != nil {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// Confirm is a yes/no prompt. Left/right or tab move focus, y and n answer
// directly, enter answers with the focused button and esc means no.
type Confirm struct {
	Prompt string
	yes    Button
	no     Button
}

// ConfirmedMsg reports the answer to a Confirm prompt.
type ConfirmedMsg struct {
	Yes bool
}

func answer(yes bool) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return ConfirmedMsg{Yes: yes} }
	}
}

// NewConfirm focuses "No" so a stray enter is harmless.
func NewConfirm(prompt, yesLabel, noLabel string) Confirm {
	return Confirm{
		Prompt: prompt,
		yes:    NewButton(yesLabel, false, answer(true)),
		no:     NewButton(noLabel, true, answer(false)),
	}
}

// YesFocused reports which button enter would press.
func (c Confirm) YesFocused() bool {
	return c.yes.Active
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "left", "right", "tab", "h", "l":
		c.yes.Active, c.no.Active = c.no.Active, c.yes.Active
		return c, nil
	case "y":
		return c, answer(true)()
	case "n", "esc":
		return c, answer(false)()
	}

	var cmd tea.Cmd
	if c.yes.Active {
		c.yes, cmd = c.yes.Update(msg)
	} else {
		c.no, cmd = c.no.Update(msg)
	}
	return c, cmd
}

func (c Confirm) View() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, c.yes.View(), "  ", c.no.View())
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt),
		"",
		buttons,
	)
}
