// Package chart renders per-bucket KPI bars with a target marker, one
// row per 10-minute bucket.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"packtv/internal/kpi"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	noDataStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// Value extracts the plotted value and its target from a bucket.
type Value func(kpi.Bucket) (val, target float64)

// PacksPerManHour plots estimated packs per man-hour.
func PacksPerManHour(b kpi.Bucket) (float64, float64) { return b.PacksPerManHour, b.PacksTarget }

// BinsPerHour plots bins per hour.
func BinsPerHour(b kpi.Bucket) (float64, float64) { return b.BinsPerHour, b.BinHourTarget }

// View renders one chart. Buckets plot as horizontal bars colored by
// target comparison, with a tick at the target position.
func View(title string, buckets []kpi.Bucket, value Value, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(buckets) == 0 {
		b.WriteString(noDataStyle.Render("No data"))
		return b.String()
	}

	// scale to the largest of all values and targets
	maxV := 0.0
	for _, bk := range buckets {
		v, t := value(bk)
		if v > maxV {
			maxV = v
		}
		if t > maxV {
			maxV = t
		}
	}
	if maxV == 0 {
		maxV = 1
	}

	barWidth := width - 22 // label + value columns
	if barWidth < 10 {
		barWidth = 10
	}
	for _, bk := range buckets {
		v, t := value(bk)
		fill := int(v / maxV * float64(barWidth))
		tick := int(t / maxV * float64(barWidth))
		if tick >= barWidth {
			tick = barWidth - 1
		}
		bar := []rune(strings.Repeat("█", fill) + strings.Repeat(" ", barWidth-fill))
		barStr := lipgloss.NewStyle().Foreground(lipgloss.Color(kpi.TargetColor(v, t))).Render(string(bar[:clamp(tick, 0, len(bar))]))
		rest := ""
		if tick < len(bar) {
			rest = targetStyle.Render("┊") + lipgloss.NewStyle().Foreground(lipgloss.Color(kpi.TargetColor(v, t))).Render(string(bar[tick+1:]))
		}
		b.WriteString(fmt.Sprintf("%s %s%s %s\n",
			labelStyle.Render(bk.Start),
			barStr, rest,
			labelStyle.Render(fmt.Sprintf("%.1f", v))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
