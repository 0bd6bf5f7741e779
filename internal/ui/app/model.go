package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ledgerdto "ascent/internal/modules/ledger/dto"
	ringdto "ascent/internal/modules/ring/dto"
	rollupdto "ascent/internal/modules/rollup/dto"
	sessiondto "ascent/internal/modules/session/dto"
	"ascent/internal/platform/calendar"
	apperrors "ascent/internal/platform/errors"
	"ascent/internal/ui/components"
	"ascent/internal/ui/theme"
	monthview "ascent/internal/ui/views/month"
	sessionsview "ascent/internal/ui/views/sessions"
	todayview "ascent/internal/ui/views/today"
	weekview "ascent/internal/ui/views/week"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal surface this orchestration layer needs. Views
// declare their own narrower ports.

type LedgerPort interface {
	Log(ctx context.Context, date, discipline, grade string, delta int) (ledgerdto.LogOutput, error)
	ResetDay(ctx context.Context, date, discipline string) (ledgerdto.ResetDayOutput, error)
}

type RingPort interface {
	DayRing(ctx context.Context, date, discipline string) (ringdto.DayRingOutput, error)
	Dual(ctx context.Context, date string) (ringdto.DualOutput, error)
	Week(ctx context.Context, weekStart, discipline string) ([]ringdto.DayStackOutput, error)
	Pyramid(ctx context.Context, from, to, discipline string) ([]ringdto.LevelOutput, error)
}

type RollupPort interface {
	Week(ctx context.Context, weekStart, discipline string) (rollupdto.WeekOutput, error)
	MonthCells(ctx context.Context, anchor, discipline string) ([]rollupdto.CellOutput, error)
	ExportWeek(ctx context.Context, weekStart string) (rollupdto.ExportOutput, error)
}

type SessionPort interface {
	Start(ctx context.Context, gymName string) (sessiondto.StartOutput, error)
	End(ctx context.Context) (sessiondto.EndOutput, error)
	GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error)
	History(ctx context.Context, limit int) ([]sessiondto.EntryOutput, error)
}

// Options carries everything the model needs besides the ports.
type Options struct {
	Goals        map[string]int
	WeekStartsOn time.Weekday
	Now          func() time.Time
	PlanChanges  <-chan rollupdto.PlanChanged
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabWeek
	tabMonth
	tabSessions
	tabCount
)

var tabLabels = [tabCount]string{"Today", "Week", "Month", "Sessions"}

// ─── async messages ──────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active sessiondto.ActiveSessionOutput
	err    error
}

type sessionStartedMsg struct {
	out sessiondto.StartOutput
	err error
}

type sessionEndedMsg struct {
	out sessiondto.EndOutput
	err error
}

type loggedMsg struct {
	out ledgerdto.LogOutput
	err error
}

type resetMsg struct {
	out ledgerdto.ResetDayOutput
	err error
}

type exportedMsg struct {
	out rollupdto.ExportOutput
	err error
}

type planChangedMsg struct {
	change rollupdto.PlanChanged
	closed bool
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab        key.Binding
	PrevDay    key.Binding
	NextDay    key.Binding
	Today      key.Binding
	Discipline key.Binding
	Session    key.Binding
	Help       key.Binding
	Palette    key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:        key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next view")),
		PrevDay:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "back")),
		NextDay:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "forward")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Discipline: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "boulder/rope/all")),
		Session:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/end session")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.PrevDay, k.NextDay, k.Today},
		{k.Discipline, k.Session},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the selected day and
// discipline, session state, help and the command palette. Rendering is
// delegated to the views.
type Model struct {
	ledger  LedgerPort
	ring    RingPort
	rollup  RollupPort
	session SessionPort
	opts    Options

	todayView    todayview.Model
	weekView     weekview.Model
	monthView    monthview.Model
	sessionsView sessionsview.Model

	date       calendar.Date
	discipline string

	activeTab     tabID
	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	activeSession sessiondto.ActiveSessionOutput
	hasActive     bool
	status        string
	width         int
	height        int
	initLoad      tea.Cmd
}

func NewModel(ledger LedgerPort, ring RingPort, rollup RollupPort, session SessionPort, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := Model{
		ledger:       ledger,
		ring:         ring,
		rollup:       rollup,
		session:      session,
		opts:         opts,
		todayView:    todayview.New(ring),
		weekView:     weekview.New(weekBridge{ring: ring, rollup: rollup}),
		monthView:    monthview.New(rollup, opts.WeekStartsOn),
		sessionsView: sessionsview.New(session),
		date:         calendar.Of(opts.Now()),
		activeTab:    tabToday,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
	m.initLoad = m.todayView.Load(string(m.date), m.discipline)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.initLoad,
		m.loadActiveCmd(),
		m.waitForPlanChange(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	// The palette takes every key while open. Async results still reach the views.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case activeLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "active session check: " + msg.err.Error()
			}
			m.hasActive = false
		} else {
			m.hasActive = true
			m.activeSession = msg.active
			m.status = "session in progress since " + msg.active.StartedAt.Format("15:04")
		}
		return m, nil

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "session start failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = true
		m.activeSession = sessiondto.ActiveSessionOutput{GymName: msg.out.GymName, StartedAt: msg.out.StartedAt, Elapsed: "0m"}
		m.status = withWarning("session started", msg.out.Warning)
		if msg.out.Finished != nil {
			m.status = withWarning("previous session closed ("+msg.out.Finished.DurationLabel+"), new session started", msg.out.Warning)
		}
		return m, m.sessionsView.Load()

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = "session end failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = false
		m.activeSession = sessiondto.ActiveSessionOutput{}
		m.status = withWarning("session ended after "+msg.out.Entry.DurationLabel, msg.out.Warning)
		return m, m.sessionsView.Load()

	case loggedMsg:
		if msg.err != nil {
			m.status = "log failed: " + msg.err.Error()
			return m, nil
		}
		e := msg.out.Entry
		switch {
		case msg.out.Deleted:
			m.status = fmt.Sprintf("%s %s cleared", e.Discipline, e.Grade)
		case e.ID == "":
			m.status = "nothing to remove"
		default:
			m.status = fmt.Sprintf("%s %s x%d", e.Discipline, e.Grade, e.Count)
		}
		m.status = withWarning(m.status, msg.out.Warning)
		cmd := m.reloadActive()
		return m, cmd

	case resetMsg:
		if msg.err != nil {
			m.status = "reset failed: " + msg.err.Error()
			return m, nil
		}
		m.status = withWarning(fmt.Sprintf("removed %d rows", msg.out.Removed), msg.out.Warning)
		cmd := m.reloadActive()
		return m, cmd

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "week written to " + msg.out.Path
		}
		return m, nil

	case planChangedMsg:
		if msg.closed {
			return m, nil
		}
		cmds = append(cmds, m.waitForPlanChange())
		if m.monthView.Covers(msg.change.Date) {
			cmds = append(cmds, m.monthView.Reload())
		}
		return m, tea.Batch(cmds...)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case msg.String() == "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			cmd := m.reloadActive()
			return m, cmd
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			cmd := m.reloadActive()
			return m, cmd
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		case key.Matches(msg, m.keys.PrevDay):
			m.date = m.step(-1)
			cmd := m.reloadActive()
			return m, cmd
		case key.Matches(msg, m.keys.NextDay):
			m.date = m.step(1)
			cmd := m.reloadActive()
			return m, cmd
		case key.Matches(msg, m.keys.Today):
			m.date = calendar.Of(m.opts.Now())
			cmd := m.reloadActive()
			return m, cmd
		case key.Matches(msg, m.keys.Discipline):
			m.discipline = nextDiscipline(m.discipline)
			m.status = "showing " + disciplineLabel(m.discipline)
			cmd := m.reloadActive()
			return m, cmd
		case key.Matches(msg, m.keys.Session):
			if m.hasActive {
				return m, m.endSessionCmd()
			}
			return m, m.startSessionCmd("")
		}
	}

	// Everything else goes to the views; each ignores what is not its own.
	var cmd tea.Cmd
	m.todayView, cmd = m.todayView.Update(msg)
	cmds = append(cmds, cmd)
	m.weekView, cmd = m.weekView.Update(msg)
	cmds = append(cmds, cmd)
	m.monthView, cmd = m.monthView.Update(msg)
	cmds = append(cmds, cmd)
	if m.activeTab == tabSessions {
		m.sessionsView, cmd = m.sessionsView.Update(msg)
		cmds = append(cmds, cmd)
	} else if _, ok := msg.(sessionsview.LoadedMsg); ok {
		m.sessionsView, cmd = m.sessionsView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabWeek:
		return m.weekView.View()
	case tabMonth:
		return m.monthView.View()
	case tabSessions:
		return m.sessionsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "ascent  " + strings.Join(parts, theme.Muted.Render(" │ ")) + theme.Muted.Render("   "+disciplineLabel(m.discipline))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		gym := m.activeSession.GymName
		if gym == "" {
			gym = "session"
		}
		left = theme.Hot.Render("● "+gym+" since "+m.activeSession.StartedAt.Format("15:04")) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:view  ::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// step moves the selected date by one unit of the active view.
func (m Model) step(n int) calendar.Date {
	switch m.activeTab {
	case tabWeek:
		return m.date.AddDays(7 * n)
	case tabMonth:
		t := m.date.Time()
		return calendar.Of(time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
	default:
		return m.date.AddDays(n)
	}
}

func (m Model) weekStart() calendar.Date {
	return calendar.WeekStart(m.date, m.opts.WeekStartsOn)
}

func (m Model) goal() int {
	if m.discipline != "" {
		return m.opts.Goals[m.discipline]
	}
	total := 0
	for _, g := range m.opts.Goals {
		total += g
	}
	return total
}

// reloadActive refreshes the view on screen for the current date.
func (m *Model) reloadActive() tea.Cmd {
	switch m.activeTab {
	case tabWeek:
		return m.weekView.Load(string(m.weekStart()), m.discipline, m.goal())
	case tabMonth:
		return m.monthView.Load(string(m.date), m.discipline)
	case tabSessions:
		return m.sessionsView.Load()
	default:
		return m.todayView.Load(string(m.date), m.discipline)
	}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.todayView, _ = m.todayView.Update(sz)
	m.weekView, _ = m.weekView.Update(sz)
	m.sessionsView, _ = m.sessionsView.Update(sz)
}

func nextDiscipline(current string) string {
	switch current {
	case "":
		return "boulder"
	case "boulder":
		return "rope"
	default:
		return ""
	}
}

func disciplineLabel(d string) string {
	if d == "" {
		return "all"
	}
	return d
}

func withWarning(status, warning string) string {
	if warning == "" {
		return status
	}
	return status + theme.Warn.Render("  ! "+warning)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		if m.session == nil {
			return activeLoadedMsg{err: apperrors.ErrNoActiveSession}
		}
		active, err := m.session.GetActive(context.Background())
		return activeLoadedMsg{active: active, err: err}
	}
}

func (m Model) startSessionCmd(gym string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), gym)
		return sessionStartedMsg{out: out, err: err}
	}
}

func (m Model) endSessionCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.End(context.Background())
		return sessionEndedMsg{out: out, err: err}
	}
}

func (m Model) logCmd(discipline, grade string, delta int) tea.Cmd {
	date := string(m.date)
	return func() tea.Msg {
		out, err := m.ledger.Log(context.Background(), date, discipline, grade, delta)
		return loggedMsg{out: out, err: err}
	}
}

func (m Model) resetCmd(discipline string) tea.Cmd {
	date := string(m.date)
	return func() tea.Msg {
		out, err := m.ledger.ResetDay(context.Background(), date, discipline)
		return resetMsg{out: out, err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	weekStart := string(m.weekStart())
	return func() tea.Msg {
		out, err := m.rollup.ExportWeek(context.Background(), weekStart)
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) waitForPlanChange() tea.Cmd {
	ch := m.opts.PlanChanges
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		return planChangedMsg{change: change, closed: !ok}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

type weekBridge struct {
	ring   RingPort
	rollup RollupPort
}

func (b weekBridge) Week(ctx context.Context, weekStart, discipline string) ([]ringdto.DayStackOutput, error) {
	return b.ring.Week(ctx, weekStart, discipline)
}

func (b weekBridge) Counts(ctx context.Context, weekStart, discipline string) (rollupdto.WeekOutput, error) {
	return b.rollup.Week(ctx, weekStart, discipline)
}
