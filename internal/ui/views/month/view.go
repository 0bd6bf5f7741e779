package month

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rollupdto "ascent/internal/modules/rollup/dto"
	"ascent/internal/ui/components"
	"ascent/internal/ui/theme"
)

type Port interface {
	MonthCells(ctx context.Context, anchor, discipline string) ([]rollupdto.CellOutput, error)
}

type LoadedMsg struct {
	Anchor string
	Cells  []rollupdto.CellOutput
	Err    error
}

// Model is a calendar where each day shows plan completion and the logged
// count against the daily goal.
type Model struct {
	port       Port
	spinner    spinner.Model
	anchor     string
	discipline string
	weekStart  time.Weekday
	selected   string
	cells      []rollupdto.CellOutput
	loading    bool
	err        error
}

func New(port Port, weekStart time.Weekday) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)
	return Model{port: port, spinner: sp, weekStart: weekStart}
}

func (m *Model) Load(anchor, discipline string) tea.Cmd {
	m.anchor = anchor
	m.selected = anchor
	m.discipline = discipline
	m.loading = true
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		if port == nil {
			return LoadedMsg{Anchor: anchor}
		}
		cells, err := port.MonthCells(context.Background(), anchor, discipline)
		return LoadedMsg{Anchor: anchor, Cells: cells, Err: err}
	})
}

// Reload refreshes the current month, e.g. after a plan note changed.
func (m *Model) Reload() tea.Cmd {
	if m.anchor == "" {
		return nil
	}
	return m.Load(m.anchor, m.discipline)
}

// Covers reports whether date falls in the month on screen.
func (m Model) Covers(date string) bool {
	return len(date) >= 7 && len(m.anchor) >= 7 && date[:7] == m.anchor[:7]
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Anchor != m.anchor {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.cells = msg.Cells
		}
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading && len(m.cells) == 0 {
		return m.spinner.View() + " reading plans…"
	}
	if m.err != nil {
		return theme.Warn.Render("could not load month: " + m.err.Error())
	}
	return theme.Pane.Render(Grid(m.cells, m.weekStart, m.selected))
}

// Grid lays cells out as calendar weeks starting on weekStart. Each day is
// "dd" followed by the plan and log pies.
func Grid(cells []rollupdto.CellOutput, weekStart time.Weekday, selected string) string {
	if len(cells) == 0 {
		return theme.Muted.Render("no days")
	}
	first, err := time.Parse("2006-01-02", cells[0].Date)
	if err != nil {
		return theme.Warn.Render("bad date " + cells[0].Date)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(first.Format("January 2006")) + "\n")
	header := make([]string, 7)
	for i := range header {
		wd := time.Weekday((int(weekStart) + i) % 7)
		header[i] = pad(wd.String()[:2], 6)
	}
	sb.WriteString(theme.Muted.Render(strings.Join(header, "")) + "\n")

	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	row := make([]string, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, pad("", 6))
	}
	for _, c := range cells {
		row = append(row, cell(c, c.Date == selected))
		if len(row) == 7 {
			sb.WriteString(strings.Join(row, "") + "\n")
			row = row[:0]
		}
	}
	if len(row) > 0 {
		sb.WriteString(strings.Join(row, "") + "\n")
	}
	sb.WriteString(theme.Muted.Render("outer: plan  inner: climbs"))
	return sb.String()
}

func cell(c rollupdto.CellOutput, selected bool) string {
	day := c.Date[len(c.Date)-2:]
	if selected {
		day = theme.Hot.Render(day)
	} else {
		day = theme.Muted.Render(day)
	}
	return day + components.Pie(c.Plan) + components.Pie(c.Log) + "  "
}

func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
