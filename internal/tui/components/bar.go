package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/reimburse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders a bar showing what fraction of a total one component is,
// followed by the percentage. Fractions outside [0, 1] are clamped.
func ShareBar(share float64, width int) string {
	t := theme.Active

	share = min(max(share, 0), 1)
	filled := min(int(share*float64(width)), width)

	filledStyle := lipgloss.NewStyle().Foreground(t.Blue)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	b.WriteString(" ")
	b.WriteString(pctStyle.Render(fmt.Sprintf("%3.0f%%", share*100)))
	return b.String()
}

// KeyHint is one key binding shown in the status bar.
type KeyHint struct {
	Key  string
	Help string
}

// RenderStatusBar renders the bottom bar: key hints on the left, an optional
// note right-aligned.
func RenderStatusBar(width int, hints []KeyHint, note string) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent)
	helpStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render("["+h.Key+"]") + helpStyle.Render(h.Help)
	}
	left := " " + strings.Join(parts, "  ")

	right := ""
	if note != "" {
		right = helpStyle.Render(note + " ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", padding) + right
}
