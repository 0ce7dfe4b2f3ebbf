// Package runtable renders the current-runs table and flags runs that
// started or ended since the previous refresh.
package runtable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"packtv/internal/kpi"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
)

// Table is the runs widget.
type Table struct {
	tbl     table.Model
	empty   bool
	changed map[string]bool
	ended   int
}

// New builds an empty runs table.
func New() *Table {
	cols := []table.Column{
		{Title: "Run Key", Width: 10},
		{Title: "Grower", Width: 8},
		{Title: "Variety", Width: 20},
		{Title: "Shift", Width: 5},
		{Title: "BPH Target", Width: 10},
		{Title: "PPMH Target", Width: 11},
	}
	t := table.New(table.WithColumns(cols), table.WithFocused(false))
	s := table.DefaultStyles()
	s.Header = headerStyle
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return &Table{tbl: t}
}

// SetRuns replaces the table contents. prevKeys are the run keys from
// the previous refresh; runs not present then are marked as new.
func (t *Table) SetRuns(runs []kpi.Run, prevKeys []string) {
	t.empty = len(runs) == 0
	curKeys := Keys(runs)
	added, removed := Changes(prevKeys, curKeys)
	t.changed = make(map[string]bool, len(added))
	for _, k := range added {
		t.changed[k] = true
	}
	t.ended = len(removed)

	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		key := r.RunKey
		if t.changed[key] {
			key = newStyle.Render("● " + key)
		}
		rows = append(rows, table.Row{
			key, r.GrowerNumber, r.VarietyList, r.Shift,
			fmt.Sprintf("%.1f", r.BinHourTarget),
			fmt.Sprintf("%.1f", r.PacksManHourTarget),
		})
	}
	t.tbl.SetRows(rows)
	t.tbl.SetHeight(len(rows) + 1)
}

// Ended reports how many runs disappeared since the previous refresh.
func (t *Table) Ended() int { return t.ended }

// View renders the table, or a placeholder when the shift has no runs.
func (t *Table) View() string {
	if t.empty {
		return emptyStyle.Render("No active runs")
	}
	return t.tbl.View()
}

// Keys returns the sorted run keys of a run list.
func Keys(runs []kpi.Run) []string {
	keys := make([]string, 0, len(runs))
	for _, r := range runs {
		keys = append(keys, r.RunKey)
	}
	sort.Strings(keys)
	return keys
}

// Changes diffs two sorted key lists line-wise and returns the keys that
// appeared and disappeared.
func Changes(prev, cur []string) (added, removed []string) {
	if len(prev) == 0 {
		// first refresh: nothing to compare against
		return nil, nil
	}
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(joinLines(prev), joinLines(cur))
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)
	for _, df := range diffs {
		for _, line := range splitLines(df.Text) {
			switch df.Type {
			case dmp.DiffInsert:
				added = append(added, line)
			case dmp.DiffDelete:
				removed = append(removed, line)
			}
		}
	}
	return added, removed
}

func joinLines(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return strings.Join(keys, "\n") + "\n"
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
