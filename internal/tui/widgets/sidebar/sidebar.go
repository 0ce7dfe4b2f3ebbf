// Package sidebar is the TV display's retractable control panel. It
// stays off screen until the pointer moves anywhere in the UI, then
// slides back out after a fixed idle delay unless the pointer moves
// again. The panel holds the date picker and the reset-to-today hint.
package sidebar

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"packtv/internal/tui/state"
)

// PanelID is the key the dashboard mounts the sidebar under in its panel
// registry. Reveal and hide both look the panel up by this identifier
// and silently skip when it is absent.
const PanelID = "tv-sidebar"

// DefaultIdleDelay is how long the panel stays out after the last
// pointer movement.
const DefaultIdleDelay = 3000 * time.Millisecond

// HideTickMsg fires when a scheduled hide comes due. Seq ties it to the
// pending-hide slot it was scheduled under; a stale Seq means a later
// pointer movement superseded it.
type HideTickMsg struct {
	Seq int
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Panel is the sidebar widget.
type Panel struct {
	width int
	delay time.Duration
	date  textinput.Model
}

// New builds a panel of the given column width with the given idle
// delay.
func New(width int, delay time.Duration) *Panel {
	ti := textinput.New()
	ti.Placeholder = "Today"
	ti.Prompt = ""
	ti.CharLimit = 10 // YYYY-MM-DD
	ti.Width = 12
	return &Panel{width: width, delay: delay, date: ti}
}

// Width returns the panel's column width.
func (p *Panel) Width() int { return p.width }

// Offset derives the horizontal offset from the visibility state: 0 when
// revealed, the panel's own width off screen when hidden.
func (p *Panel) Offset(v state.Visibility) int {
	if v == state.Revealed {
		return 0
	}
	return -p.width
}

// ScheduleHide arms the single pending-hide slot: one tick, tagged with
// the sequence it was scheduled under. Scheduling again with a newer
// sequence makes this one stale.
func (p *Panel) ScheduleHide(seq int) tea.Cmd {
	return tea.Tick(p.delay, func(time.Time) tea.Msg {
		return HideTickMsg{Seq: seq}
	})
}

// FocusDate moves input focus into the date field.
func (p *Panel) FocusDate() tea.Cmd {
	p.date.Focus()
	return textinput.Blink
}

// BlurDate drops input focus from the date field.
func (p *Panel) BlurDate() { p.date.Blur() }

// SetDate overwrites the date field's contents.
func (p *Panel) SetDate(s string) { p.date.SetValue(s) }

// DateValue returns the raw date field contents.
func (p *Panel) DateValue() string { return p.date.Value() }

// UpdateDate forwards a message to the date field.
func (p *Panel) UpdateDate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.date, cmd = p.date.Update(msg)
	return cmd
}

// View renders the panel at the given height. A hidden panel renders
// nothing: its offset places it fully off screen.
func (p *Panel) View(s state.UIState, height int) string {
	if p.Offset(s.Sidebar) != 0 {
		return ""
	}
	inner := p.width - 4 // padding + border
	rule := ruleStyle.Render(lipgloss.NewStyle().Width(inner).Render(horizontalRule(inner)))
	body := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("SELECT DATE"),
		"",
		p.date.View(),
		"",
		hintStyle.Render("enter: apply  t: today"),
		rule,
		hintStyle.Render("Move mouse to show controls"),
	)
	return panelStyle.Width(p.width - 1).Height(height - 2).Render(body)
}

func horizontalRule(w int) string {
	if w <= 0 {
		return ""
	}
	out := make([]rune, w)
	for i := range out {
		out[i] = '─'
	}
	return string(out)
}
