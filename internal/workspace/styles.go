package workspace

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	cursor    lipgloss.Style
	selected  lipgloss.Style
	item      lipgloss.Style
	key       lipgloss.Style
	board     lipgloss.Style
	focused   lipgloss.Style
	part      lipgloss.Style
	selection lipgloss.Style
	value     lipgloss.Style
	toast     lipgloss.Style
	warn      lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(t.Heading).Bold(true),
		subtle:   lipgloss.NewStyle().Foreground(t.Grid),
		cursor:   lipgloss.NewStyle().Foreground(t.Heading).Bold(true),
		selected: lipgloss.NewStyle().Foreground(t.Label).Bold(true),
		item:     lipgloss.NewStyle().Foreground(t.Grid),
		key:      lipgloss.NewStyle().Foreground(t.Heading).Bold(true),
		board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Frame),
		focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.FocusFrame),
		part: lipgloss.NewStyle().Foreground(t.Part).Bold(true),
		selection: lipgloss.NewStyle().
			Foreground(t.Part).
			Background(t.Selection).
			Bold(true),
		value: lipgloss.NewStyle().Foreground(t.Reading).Bold(true),
		toast: lipgloss.NewStyle().
			Foreground(t.Label).
			Background(t.Selection).
			Padding(0, 1),
		warn: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
	}
}

// hints renders "key action" pairs.
func (s styles) hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.key.Render(pairs[i]))
		b.WriteString(s.subtle.Render(" " + pairs[i+1]))
	}
	return b.String()
}

// separator renders a decorative rule.
func (s styles) separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}
