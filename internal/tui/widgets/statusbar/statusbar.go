package statusbar

import (
	"fmt"
	"strings"
	"time"

	"packtv/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState, updated time.Time, nextRefresh time.Duration) string {
	date := "Live"
	if s.SelectedDate != "" {
		date = s.SelectedDate
	}
	upd := "Updated: --"
	if !updated.IsZero() {
		upd = "Updated: " + updated.Format("03:04:05 PM")
	}
	next := fmt.Sprintf("Next: %ds", int(nextRefresh.Round(time.Second).Seconds()))
	keys := "r: refresh  d: date  t: today  y: copy  ?: help  q: quit"
	if s.Focus == state.FocusDate {
		keys = "enter: apply  esc: cancel"
	}

	parts := []string{date, upd, next, keys}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  |  ")
}
