// Package kpi holds the shift KPI domain: totals, buckets, runs, and the
// target-comparison rules the TV display renders with.
package kpi

import (
	"fmt"
	"strings"
	"time"
)

// Target colors. A value at or above target is green, within 10% below is
// amber, further below is red. No target means neutral grey.
const (
	ColorOnTarget   = "#4CAF50"
	ColorNearTarget = "#FFC107"
	ColorOffTarget  = "#F44336"
	ColorNoTarget   = "#555555"
	ColorNeutral    = "#2d2d2d"
)

// ShiftTotals is one date-shift row of aggregated KPIs. Nullable columns
// are pointers; a nil value renders as an em dash.
type ShiftTotals struct {
	DateShiftKey string `json:"date_shift_key"`
	DayLabel     string `json:"day_label"`
	Shift        string `json:"shift"`

	BinsPerHour         *float64 `json:"bins_per_hour"`
	BinHourTarget       *float64 `json:"bin_hour_target"`
	StamperPPMH         *float64 `json:"stamper_ppmh"`
	PacksManHourTarget  *float64 `json:"packs_manhour_target"`
	TotalBins           *float64 `json:"total_bins"`
	BinsTargetFullShift *float64 `json:"bins_target_full_shift"`
	PacksPerBin         *float64 `json:"packs_per_bin"`

	// Card background colors precomputed by the ingest jobs. Empty means
	// neutral.
	BPHColor   string `json:"bph_color"`
	PacksColor string `json:"packs_color"`
	BinsColor  string `json:"bins_color"`
}

// Bucket is a 10-minute KPI bucket within a shift.
type Bucket struct {
	Start           string  `json:"start"` // HH:MM label
	BinsPerHour     float64 `json:"bins_per_hour"`
	BinHourTarget   float64 `json:"bin_hour_target"`
	PacksPerManHour float64 `json:"packs_per_man_hour"`
	PacksTarget     float64 `json:"packs_manhour_target"`
	MinutesElapsed  float64 `json:"minutes_elapsed"`
}

// Run is one active packing run in the shift.
type Run struct {
	RunKey             string  `json:"run_key"`
	GrowerNumber       string  `json:"grower_number"`
	VarietyList        string  `json:"variety_list"`
	Shift              string  `json:"shift"`
	BinHourTarget      float64 `json:"bin_hour_target"`
	PacksManHourTarget float64 `json:"packs_manhour_target"`
}

// Snapshot is everything the dashboard shows for one refresh.
type Snapshot struct {
	SelectedDate string       `json:"selected_date,omitempty"` // empty = today
	Totals       *ShiftTotals `json:"totals"`                  // nil = no shift data
	Buckets      []Bucket     `json:"buckets"`
	Runs         []Run        `json:"runs"`
	FetchedAt    time.Time    `json:"fetched_at"`
}

// Empty reports whether the snapshot carries no shift data at all.
func (s *Snapshot) Empty() bool { return s == nil || s.Totals == nil }

// TargetColor picks the bar color for a value against its target.
func TargetColor(val, target float64) string {
	if target == 0 {
		return ColorNoTarget
	}
	pct := (val - target) / target
	switch {
	case pct >= 0:
		return ColorOnTarget
	case pct >= -0.10:
		return ColorNearTarget
	default:
		return ColorOffTarget
	}
}

// DeltaPct returns the percentage delta of val against target, or 0 when
// either is missing or the target is zero.
func DeltaPct(val, target *float64) float64 {
	if val == nil || target == nil || *target == 0 {
		return 0
	}
	return (*val - *target) / *target * 100
}

// FormatValue renders a nullable KPI value with one decimal and thousands
// separators; nil becomes an em dash.
func FormatValue(v *float64) string {
	if v == nil {
		return "—"
	}
	return groupThousands(fmt.Sprintf("%.1f", *v))
}

// FormatGoal renders the "Goal: <target> (+d%)" line, or a blank
// placeholder so card heights stay consistent when there is no target.
func FormatGoal(val, target *float64) string {
	if target == nil || *target <= 0 || val == nil {
		return " "
	}
	d := DeltaPct(val, target)
	sign := ""
	if d >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("Goal: %s (%s%.1f%%)", groupThousands(fmt.Sprintf("%.1f", *target)), sign, d)
}

// Card is one rendered KPI card.
type Card struct {
	Title string
	Value string
	Goal  string
	Color string
}

// Cards assembles the four TV cards from shift totals.
func Cards(t *ShiftTotals) []Card {
	if t == nil {
		return nil
	}
	color := func(c string) string {
		if c == "" {
			return ColorNeutral
		}
		return c
	}
	return []Card{
		{Title: "Bins Per Hour", Value: FormatValue(t.BinsPerHour), Goal: FormatGoal(t.BinsPerHour, t.BinHourTarget), Color: color(t.BPHColor)},
		{Title: "Packs Per Man Hour", Value: FormatValue(t.StamperPPMH), Goal: FormatGoal(t.StamperPPMH, t.PacksManHourTarget), Color: color(t.PacksColor)},
		{Title: "Total Bins", Value: FormatValue(t.TotalBins), Goal: FormatGoal(t.TotalBins, t.BinsTargetFullShift), Color: color(t.BinsColor)},
		{Title: "Packs Per Bin", Value: FormatValue(t.PacksPerBin), Goal: " ", Color: ColorNeutral},
	}
}

// Header returns the dashboard header line for a snapshot.
func (s *Snapshot) Header() string {
	if s.Empty() {
		d := s.SelectedDate
		if d == "" {
			d = "Today"
		}
		return "No data — " + d
	}
	return fmt.Sprintf("%s — Shift %s", s.Totals.DayLabel, s.Totals.Shift)
}

// Summary renders a plain-text digest of the snapshot, used by the
// clipboard copy key and handy for pasting into shift-change notes.
func (s *Snapshot) Summary() string {
	var b strings.Builder
	b.WriteString(s.Header())
	b.WriteString("\n")
	for _, c := range Cards(s.Totals) {
		goal := strings.TrimSpace(c.Goal)
		if goal == "" {
			b.WriteString(fmt.Sprintf("%s: %s\n", c.Title, c.Value))
		} else {
			b.WriteString(fmt.Sprintf("%s: %s  %s\n", c.Title, c.Value, goal))
		}
	}
	if len(s.Runs) > 0 {
		b.WriteString(fmt.Sprintf("Active runs: %d\n", len(s.Runs)))
	}
	b.WriteString("Updated: " + s.FetchedAt.Format("03:04:05 PM"))
	return b.String()
}

// groupThousands inserts commas into the integer part of a formatted
// number ("12345.6" -> "12,345.6").
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	out := intPart
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
