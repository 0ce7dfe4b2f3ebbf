// Package cards renders the row of KPI cards across the top of the TV.
package cards

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"packtv/internal/kpi"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	goalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// View lays the cards out side by side across the given width. Every
// card renders a goal line even when blank so the row keeps a constant
// height.
func View(cs []kpi.Card, width int) string {
	if len(cs) == 0 {
		return ""
	}
	per := width/len(cs) - 2
	if per < 12 {
		per = 12
	}
	rendered := make([]string, 0, len(cs))
	for _, c := range cs {
		card := lipgloss.NewStyle().
			Background(lipgloss.Color(c.Color)).
			Width(per).
			Padding(1, 2).
			Align(lipgloss.Center).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				titleStyle.Render(strings.ToUpper(c.Title)),
				valueStyle.Render(c.Value),
				goalStyle.Render(c.Goal),
			))
		rendered = append(rendered, card)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(rendered, "  ")...)
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}
