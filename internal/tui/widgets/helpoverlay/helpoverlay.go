package helpoverlay

import (
	"fmt"
	"strings"

	"packtv/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current date selection shown.
func (HelpOverlay) View(s state.UIState) string {
	showing := "live shift"
	if s.SelectedDate != "" {
		showing = s.SelectedDate
	}
	sections := []struct {
		title string
		keys  []string
	}{
		{"Data", []string{"r: refresh now", "d: pick a date", "t: back to today"}},
		{"Sidebar", []string{"move mouse: show controls", "Enter: apply date", "Esc: cancel entry"}},
		{"Other", []string{"y: copy summary to clipboard", "?: close help", "q: quit"}},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Showing: %s)\n", showing)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, k := range sec.keys {
			fmt.Fprintf(&b, "  %s\n", k)
		}
	}
	return b.String()
}
