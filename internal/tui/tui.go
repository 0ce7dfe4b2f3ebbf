// Package tui is the TV dashboard: KPI cards, bucket charts, the runs
// table, and the hover-revealed sidebar, refreshed from the store on a
// fixed interval.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"packtv/internal/kpi"
	"packtv/internal/tui/state"
	"packtv/internal/tui/widgets/cards"
	"packtv/internal/tui/widgets/chart"
	"packtv/internal/tui/widgets/helpoverlay"
	"packtv/internal/tui/widgets/runtable"
	"packtv/internal/tui/widgets/sidebar"
	"packtv/internal/tui/widgets/statusbar"
)

// Snapshotter loads one dashboard refresh. An empty date selects the
// live shift.
type Snapshotter interface {
	Snapshot(ctx context.Context, date string) (*kpi.Snapshot, error)
}

// Options configures the dashboard program.
type Options struct {
	Store        Snapshotter
	Log          *zap.Logger
	Refresh      time.Duration
	IdleDelay    time.Duration
	SidebarWidth int

	// OnSnapshot, if set, receives every successfully loaded snapshot.
	// The status server uses it to keep /kpi.json current.
	OnSnapshot func(*kpi.Snapshot)
}

// Run starts the dashboard and blocks until it quits.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

type snapshotMsg struct {
	snap *kpi.Snapshot
	err  error
}

type refreshTickMsg time.Time

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type model struct {
	opts Options
	ui   state.UIState

	// panels maps panel identifiers to mounted widgets. Handlers that
	// reference a panel look it up here and skip silently when absent.
	panels map[string]*sidebar.Panel

	bar      statusbar.StatusBar
	help     helpoverlay.HelpOverlay
	showHelp bool
	runs     *runtable.Table

	snap        *kpi.Snapshot
	prevRunKeys []string
	updated     time.Time
	nextRefresh time.Time
	loadErr     error
}

func newModel(opts Options) model {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Refresh <= 0 {
		opts.Refresh = 5 * time.Minute
	}
	if opts.IdleDelay <= 0 {
		opts.IdleDelay = sidebar.DefaultIdleDelay
	}
	if opts.SidebarWidth <= 0 {
		opts.SidebarWidth = 28
	}
	return model{
		opts:        opts,
		nextRefresh: time.Now().Add(opts.Refresh),
		ui:          state.UIState{Sidebar: state.Hidden},
		panels: map[string]*sidebar.Panel{
			sidebar.PanelID: sidebar.New(opts.SidebarWidth, opts.IdleDelay),
		},
		bar:  statusbar.NewStatusBar(),
		help: helpoverlay.NewHelpOverlay(),
		runs: runtable.New(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchSnapshot(), m.scheduleRefresh())
}

func (m model) panel() *sidebar.Panel { return m.panels[sidebar.PanelID] }

// Update handles all dashboard interactions.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		return m.pointerMoved()

	case sidebar.HideTickMsg:
		m.ui = state.HideExpired(m.ui, msg.Seq, m.panel() != nil)
		return m, nil

	case refreshTickMsg:
		m.nextRefresh = time.Now().Add(m.opts.Refresh)
		return m, tea.Batch(m.fetchSnapshot(), m.scheduleRefresh())

	case snapshotMsg:
		return m.snapshotLoaded(msg)

	case tea.KeyMsg:
		if m.ui.Focus == state.FocusDate {
			return m.updateDateEntry(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.ui = state.WithNotice(m.ui, "Refreshing")
			return m, m.fetchSnapshot()
		case "d":
			return m.focusDate()
		case "t":
			m.ui = state.ResetToday(m.ui)
			if p := m.panel(); p != nil {
				p.SetDate("")
			}
			return m, m.fetchSnapshot()
		case "y":
			return m.copySummary()
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}
		return m, nil
	}

	if m.ui.Focus == state.FocusDate {
		// cursor blink and friends
		if p := m.panel(); p != nil {
			return m, p.UpdateDate(msg)
		}
	}
	return m, nil
}

// pointerMoved reveals the sidebar and supersedes any pending hide. It
// tolerates an unmounted panel: the state still advances, nothing is
// scheduled.
func (m model) pointerMoved() (tea.Model, tea.Cmd) {
	p := m.panel()
	m.ui = state.PointerMoved(m.ui, p != nil)
	if p == nil {
		return m, nil
	}
	return m, p.ScheduleHide(m.ui.HideSeq)
}

func (m model) focusDate() (tea.Model, tea.Cmd) {
	p := m.panel()
	if p == nil {
		return m, nil
	}
	// keep the panel out while the user types: superseding the pending
	// hide without rescheduling leaves no hide armed
	m.ui = state.FocusDateEntry(state.PointerMoved(m.ui, true))
	p.SetDate(m.ui.SelectedDate)
	return m, p.FocusDate()
}

func (m model) updateDateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panel()
	if p == nil {
		m.ui = state.Blur(m.ui)
		return m, nil
	}
	switch msg.String() {
	case "enter":
		raw := p.DateValue()
		if raw != "" {
			if _, err := time.Parse("2006-01-02", raw); err != nil {
				m.ui = state.WithNotice(m.ui, "Invalid date, use YYYY-MM-DD")
				return m, nil
			}
		}
		p.BlurDate()
		m.ui = state.SetDate(m.ui, raw)
		m.ui = state.PointerMoved(m.ui, true)
		return m, tea.Batch(m.fetchSnapshot(), p.ScheduleHide(m.ui.HideSeq))
	case "esc":
		p.BlurDate()
		m.ui = state.Blur(m.ui)
		m.ui = state.PointerMoved(m.ui, true)
		return m, p.ScheduleHide(m.ui.HideSeq)
	default:
		return m, p.UpdateDate(msg)
	}
}

func (m model) copySummary() (tea.Model, tea.Cmd) {
	if m.snap == nil {
		return m, nil
	}
	if err := clipboard.WriteAll(m.snap.Summary()); err != nil {
		m.opts.Log.Warn("clipboard write failed", zap.Error(err))
		m.ui = state.WithNotice(m.ui, "Copy failed")
		return m, nil
	}
	m.ui = state.WithNotice(m.ui, "Copied summary")
	return m, nil
}

func (m model) snapshotLoaded(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loadErr = msg.err
		m.opts.Log.Error("snapshot load failed", zap.Error(msg.err))
		m.ui = state.WithNotice(m.ui, "Refresh failed")
		return m, nil
	}
	m.loadErr = nil
	m.snap = msg.snap
	m.updated = msg.snap.FetchedAt
	m.runs.SetRuns(msg.snap.Runs, m.prevRunKeys)
	m.prevRunKeys = runtable.Keys(msg.snap.Runs)
	m.opts.Log.Info("snapshot loaded",
		zap.String("date", msg.snap.SelectedDate),
		zap.Bool("empty", msg.snap.Empty()),
		zap.Int("runs", len(msg.snap.Runs)))
	if m.opts.OnSnapshot != nil {
		m.opts.OnSnapshot(msg.snap)
	}
	return m, nil
}

func (m model) fetchSnapshot() tea.Cmd {
	date := m.ui.SelectedDate
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		snap, err := m.opts.Store.Snapshot(ctx, date)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m model) View() string {
	if m.ui.Width == 0 {
		return "Loading..."
	}
	p := m.panel()
	contentWidth := m.ui.Width
	side := ""
	if p != nil {
		side = p.View(m.ui, m.ui.Height)
		contentWidth = m.ui.Width - (p.Width() + p.Offset(m.ui.Sidebar))
	}
	main := m.viewMain(contentWidth)
	if side == "" {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(contentWidth).Render(main), side)
}

func (m model) viewMain(width int) string {
	var sections []string
	if m.showHelp {
		sections = append(sections, m.help.View(m.ui))
	} else if m.snap != nil {
		sections = append(sections, headerStyle.Render(m.snap.Header()))
		sections = append(sections, cards.View(kpi.Cards(m.snap.Totals), width))
		sections = append(sections,
			chart.View("Packs Per Man Hour", m.snap.Buckets, chart.PacksPerManHour, width),
			chart.View("Bins Per Hour", m.snap.Buckets, chart.BinsPerHour, width))
		sections = append(sections, m.runs.View())
	} else if m.loadErr != nil {
		sections = append(sections, errStyle.Render("Could not load shift data"))
	} else {
		sections = append(sections, "Loading...")
	}
	sections = append(sections, m.bar.View(m.ui, m.updated, time.Until(m.nextRefresh)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
