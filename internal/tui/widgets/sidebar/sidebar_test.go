package sidebar

import (
	"strings"
	"testing"
	"time"

	"packtv/internal/tui/state"
)

func TestOffset(t *testing.T) {
	p := New(28, DefaultIdleDelay)
	if got := p.Offset(state.Revealed); got != 0 {
		t.Fatalf("revealed offset = %d, want 0", got)
	}
	if got := p.Offset(state.Hidden); got != -28 {
		t.Fatalf("hidden offset = %d, want -28 (panel width off screen)", got)
	}
}

func TestScheduleHideCarriesSequence(t *testing.T) {
	p := New(28, time.Millisecond)
	cmd := p.ScheduleHide(7)
	if cmd == nil {
		t.Fatalf("expected a scheduled hide command")
	}
	msg, ok := cmd().(HideTickMsg)
	if !ok {
		t.Fatalf("expected HideTickMsg, got %T", msg)
	}
	if msg.Seq != 7 {
		t.Fatalf("hide tick seq = %d, want 7", msg.Seq)
	}
}

func TestViewHiddenRendersNothing(t *testing.T) {
	p := New(28, DefaultIdleDelay)
	if out := p.View(state.UIState{Sidebar: state.Hidden}, 40); out != "" {
		t.Fatalf("hidden panel must render nothing, got %q", out)
	}
}

func TestViewRevealedShowsControls(t *testing.T) {
	p := New(28, DefaultIdleDelay)
	out := p.View(state.UIState{Sidebar: state.Revealed}, 40)
	if !strings.Contains(out, "SELECT DATE") {
		t.Fatalf("expected date picker label in revealed view")
	}
	if !strings.Contains(out, "Move mouse to show controls") {
		t.Fatalf("expected usage hint in revealed view")
	}
}

func TestDateField(t *testing.T) {
	p := New(28, DefaultIdleDelay)
	p.SetDate("2026-08-19")
	if p.DateValue() != "2026-08-19" {
		t.Fatalf("date value = %q", p.DateValue())
	}
	if cmd := p.FocusDate(); cmd == nil {
		t.Fatalf("expected blink command on focus")
	}
	p.BlurDate()
}
