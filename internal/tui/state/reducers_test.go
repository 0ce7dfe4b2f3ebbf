package state

import "testing"

func TestPointerMovedReveals(t *testing.T) {
	s := UIState{Sidebar: Hidden}
	s = PointerMoved(s, true)
	if s.Sidebar != Revealed {
		t.Fatalf("expected Revealed after pointer movement")
	}
	if s.HideSeq != 1 {
		t.Fatalf("expected a new pending-hide slot")
	}
}

func TestPointerMovedAbsentPanelLeavesStateUnchanged(t *testing.T) {
	s := UIState{Sidebar: Hidden}
	s = PointerMoved(s, false)
	if s.Sidebar != Hidden {
		t.Fatalf("expected visibility untouched when panel is absent")
	}
}

func TestHideExpired(t *testing.T) {
	s := UIState{}
	s = PointerMoved(s, true)
	s = HideExpired(s, s.HideSeq, true)
	if s.Sidebar != Hidden {
		t.Fatalf("expected Hidden after idle expiry")
	}
}

func TestStaleHideIsIgnored(t *testing.T) {
	// Three pointer movements inside the delay window: only the last
	// scheduled hide may take effect.
	s := UIState{}
	s = PointerMoved(s, true)
	first := s.HideSeq
	s = PointerMoved(s, true)
	s = PointerMoved(s, true)
	last := s.HideSeq

	s = HideExpired(s, first, true)
	if s.Sidebar != Revealed {
		t.Fatalf("superseded hide must not fire")
	}
	s = HideExpired(s, last, true)
	if s.Sidebar != Hidden {
		t.Fatalf("current hide must fire")
	}
}

func TestHideExpiredAbsentPanel(t *testing.T) {
	s := UIState{}
	s = PointerMoved(s, true)
	s = HideExpired(s, s.HideSeq, false)
	if s.Sidebar != Revealed {
		t.Fatalf("expected visibility untouched when panel is absent at expiry")
	}
}

func TestSetDateAndReset(t *testing.T) {
	s := UIState{Focus: FocusDate}
	s = SetDate(s, "2026-08-19")
	if s.SelectedDate != "2026-08-19" || s.Focus != FocusNone {
		t.Fatalf("expected date set and focus cleared")
	}
	if s.Notice == "" {
		t.Fatalf("expected a notice")
	}
	s = ResetToday(s)
	if s.SelectedDate != "" {
		t.Fatalf("expected live shift after reset")
	}
}

func TestResize(t *testing.T) {
	s := Resize(UIState{}, 120, 40)
	if s.Width != 120 || s.Height != 40 {
		t.Fatalf("expected dimensions recorded")
	}
}

func TestFocusCycle(t *testing.T) {
	s := UIState{}
	s = FocusDateEntry(s)
	if s.Focus != FocusDate {
		t.Fatalf("expected date focus")
	}
	s = Blur(s)
	if s.Focus != FocusNone {
		t.Fatalf("expected focus cleared")
	}
}
