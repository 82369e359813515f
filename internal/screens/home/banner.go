package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// glyphs holds six-row block letters. Every row of a glyph has the same
// display width.
var glyphs = map[rune][6]string{
	'E': {
		"███████╗",
		"██╔════╝",
		"█████╗  ",
		"██╔══╝  ",
		"███████╗",
		"╚══════╝",
	},
	'X': {
		"██╗  ██╗",
		"╚██╗██╔╝",
		" ╚███╔╝ ",
		" ██╔██╗ ",
		"██╔╝ ██╗",
		"╚═╝  ╚═╝",
	},
	'A': {
		" █████╗ ",
		"██╔══██╗",
		"███████║",
		"██╔══██║",
		"██║  ██║",
		"╚═╝  ╚═╝",
	},
	'M': {
		"███╗   ███╗",
		"████╗ ████║",
		"██╔████╔██║",
		"██║╚██╔╝██║",
		"██║ ╚═╝ ██║",
		"╚═╝     ╚═╝",
	},
	'P': {
		"██████╗ ",
		"██╔══██╗",
		"██████╔╝",
		"██╔═══╝ ",
		"██║     ",
		"╚═╝     ",
	},
	'R': {
		"██████╗ ",
		"██╔══██╗",
		"██████╔╝",
		"██╔══██╗",
		"██║  ██║",
		"╚═╝  ╚═╝",
	},
}

// blockText renders word in block letters. Letters without a glyph are
// dropped; a word with none renders as "".
func blockText(word string) string {
	var rows [6]strings.Builder
	drawn := false
	for _, r := range word {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		drawn = true
		for i := range rows {
			rows[i].WriteString(g[i])
		}
	}
	if !drawn {
		return ""
	}
	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

const (
	bannerCompact = "E · X · A · M · P · R · E · P"
	bannerWord    = "EXAMPREP"
)

// renderTitle returns the block banner, or a one-line fallback when compact.
func renderTitle(compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)
	if compact {
		return style.Render(bannerCompact)
	}
	return style.Render(blockText(bannerWord))
}
