package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label and suffix.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	Width   int
	Fill    lipgloss.Style
}

// NewProgressBar returns a bar filled with the default style. An empty
// suffix shows the percentage.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Suffix:  fmt.Sprintf("%d%%", int(clampUnit(percent)*100)),
		Width:   width,
		Fill:    theme.ProgressFilled,
	}
}

// CountBar renders done out of total, e.g. question progress.
func CountBar(label string, done, total, width int) ProgressBar {
	p := 0.0
	if total > 0 {
		p = float64(done) / float64(total)
	}
	bar := NewProgressBar(label, p, width)
	bar.Suffix = fmt.Sprintf("%d/%d", done, total)
	return bar
}

func clampUnit(f float64) float64 {
	return max(0, min(1, f))
}

func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + p.Suffix)
	}

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(suffix), 4)
	filled := int(float64(barWidth) * clampUnit(p.Percent))

	result += p.Fill.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	return result + suffix
}
