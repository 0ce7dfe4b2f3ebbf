package state

// Visibility is the control sidebar's explicit two-state model. The
// rendered offset is derived from it, never the other way around.
type Visibility int

const (
	Hidden Visibility = iota
	Revealed
)

// Focus selects which element receives key input.
type Focus int

const (
	FocusNone Focus = iota
	FocusDate
)

// UIState holds cross-widget UI state used by the dashboard, sidebar,
// and status bar.
type UIState struct {
	// Layout
	Width  int
	Height int

	// Sidebar visibility and the single pending-hide slot. HideSeq
	// identifies the one hide currently scheduled; a hide arriving with
	// any older sequence was superseded and is ignored.
	Sidebar Visibility
	HideSeq int

	// Date selection. Empty means the live shift ("today").
	SelectedDate string
	Focus        Focus

	// Notices and ephemeral messages
	Notice string
}
