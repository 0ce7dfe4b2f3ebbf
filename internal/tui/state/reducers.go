package state

// PointerMoved handles a pointer-movement signal and returns a new state
// copy. It always supersedes the pending hide (cancel + reschedule in
// one step: the old sequence becomes stale, the caller schedules a new
// hide for the returned HideSeq). The sidebar becomes visible only when
// its panel is present; when absent the visibility is left untouched.
func PointerMoved(s UIState, present bool) UIState {
	s.HideSeq++
	if present {
		s.Sidebar = Revealed
	}
	return s
}

// HideExpired handles a fired hide. A sequence older than the current
// slot was superseded by a later pointer movement and does nothing. The
// sidebar is hidden only when its panel is present at expiry time.
func HideExpired(s UIState, seq int, present bool) UIState {
	if seq != s.HideSeq {
		return s
	}
	if present {
		s.Sidebar = Hidden
	}
	return s
}

// Resize updates the layout dimensions.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	return s
}

// SetDate selects a calendar date to display and clears focus.
func SetDate(s UIState, date string) UIState {
	s.SelectedDate = date
	s.Focus = FocusNone
	if date == "" {
		s.Notice = "Showing live shift"
	} else {
		s.Notice = "Showing " + date
	}
	return s
}

// ResetToday returns to the live shift view.
func ResetToday(s UIState) UIState {
	return SetDate(s, "")
}

// FocusDateEntry moves key input to the sidebar's date field.
func FocusDateEntry(s UIState) UIState {
	s.Focus = FocusDate
	return s
}

// Blur returns key input to the dashboard.
func Blur(s UIState) UIState {
	s.Focus = FocusNone
	return s
}

// WithNotice sets an ephemeral status message.
func WithNotice(s UIState, msg string) UIState {
	s.Notice = msg
	return s
}
