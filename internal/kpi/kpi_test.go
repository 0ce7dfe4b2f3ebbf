package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestTargetColor(t *testing.T) {
	assert.Equal(t, ColorOnTarget, TargetColor(100, 100))
	assert.Equal(t, ColorOnTarget, TargetColor(110, 100))
	assert.Equal(t, ColorNearTarget, TargetColor(95, 100))
	assert.Equal(t, ColorNearTarget, TargetColor(90, 100))
	assert.Equal(t, ColorOffTarget, TargetColor(89, 100))
	assert.Equal(t, ColorNoTarget, TargetColor(50, 0))
}

func TestDeltaPct(t *testing.T) {
	assert.InDelta(t, 10.0, DeltaPct(f(110), f(100)), 0.001)
	assert.InDelta(t, -5.0, DeltaPct(f(95), f(100)), 0.001)
	assert.Zero(t, DeltaPct(nil, f(100)))
	assert.Zero(t, DeltaPct(f(95), nil))
	assert.Zero(t, DeltaPct(f(95), f(0)))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "—", FormatValue(nil))
	assert.Equal(t, "42.0", FormatValue(f(42)))
	assert.Equal(t, "1,234.5", FormatValue(f(1234.5)))
	assert.Equal(t, "1,234,567.9", FormatValue(f(1234567.89)))
}

func TestFormatGoal(t *testing.T) {
	assert.Equal(t, " ", FormatGoal(f(50), nil))
	assert.Equal(t, " ", FormatGoal(nil, f(100)))
	assert.Equal(t, " ", FormatGoal(f(50), f(0)))
	assert.Equal(t, "Goal: 100.0 (+10.0%)", FormatGoal(f(110), f(100)))
	assert.Equal(t, "Goal: 100.0 (-5.0%)", FormatGoal(f(95), f(100)))
}

func TestCards(t *testing.T) {
	assert.Nil(t, Cards(nil))

	totals := &ShiftTotals{
		DayLabel:      "Tuesday Aug 19",
		Shift:         "1",
		BinsPerHour:   f(42.5),
		BinHourTarget: f(40),
		BPHColor:      ColorOnTarget,
	}
	cards := Cards(totals)
	assert.Len(t, cards, 4)
	assert.Equal(t, "Bins Per Hour", cards[0].Title)
	assert.Equal(t, "42.5", cards[0].Value)
	assert.Equal(t, ColorOnTarget, cards[0].Color)
	// missing values fall back to dash + neutral color
	assert.Equal(t, "—", cards[1].Value)
	assert.Equal(t, ColorNeutral, cards[1].Color)
	// Packs Per Bin never carries a goal
	assert.Equal(t, " ", cards[3].Goal)
}

func TestSnapshotHeader(t *testing.T) {
	var empty Snapshot
	assert.Equal(t, "No data — Today", empty.Header())

	empty.SelectedDate = "2026-08-19"
	assert.Equal(t, "No data — 2026-08-19", empty.Header())

	s := Snapshot{Totals: &ShiftTotals{DayLabel: "Tuesday Aug 19", Shift: "2"}}
	assert.Equal(t, "Tuesday Aug 19 — Shift 2", s.Header())
}

func TestSnapshotSummary(t *testing.T) {
	s := Snapshot{
		Totals: &ShiftTotals{
			DayLabel:    "Tuesday Aug 19",
			Shift:       "1",
			BinsPerHour: f(42.5),
		},
		Runs:      []Run{{RunKey: "R1"}, {RunKey: "R2"}},
		FetchedAt: time.Date(2026, 8, 19, 14, 30, 5, 0, time.UTC),
	}
	out := s.Summary()
	assert.Contains(t, out, "Tuesday Aug 19 — Shift 1")
	assert.Contains(t, out, "Bins Per Hour: 42.5")
	assert.Contains(t, out, "Active runs: 2")
	assert.Contains(t, out, "02:30:05 PM")
}
