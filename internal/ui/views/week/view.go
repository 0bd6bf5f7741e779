package week

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ringdto "ascent/internal/modules/ring/dto"
	rollupdto "ascent/internal/modules/rollup/dto"
	"ascent/internal/ui/theme"
)

type Port interface {
	Week(ctx context.Context, weekStart, discipline string) ([]ringdto.DayStackOutput, error)
	Counts(ctx context.Context, weekStart, discipline string) (rollupdto.WeekOutput, error)
}

type LoadedMsg struct {
	WeekStart string
	Days      []ringdto.DayStackOutput
	Counts    rollupdto.WeekOutput
	Err       error
}

type Model struct {
	port       Port
	weekStart  string
	discipline string
	goal       int
	days       []ringdto.DayStackOutput
	counts     rollupdto.WeekOutput
	err        error
	width      int
}

func New(port Port) Model {
	return Model{port: port}
}

// Load fetches the seven days from weekStart. goal is the daily target used
// to mark days that reached it.
func (m *Model) Load(weekStart, discipline string, goal int) tea.Cmd {
	m.weekStart = weekStart
	m.discipline = discipline
	m.goal = goal
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{WeekStart: weekStart}
		}
		ctx := context.Background()
		days, err := port.Week(ctx, weekStart, discipline)
		if err != nil {
			return LoadedMsg{WeekStart: weekStart, Err: err}
		}
		counts, err := port.Counts(ctx, weekStart, discipline)
		return LoadedMsg{WeekStart: weekStart, Days: days, Counts: counts, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case LoadedMsg:
		if msg.WeekStart != m.weekStart {
			return m, nil
		}
		m.err = msg.Err
		if msg.Err == nil {
			m.days = msg.Days
			m.counts = msg.Counts
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Warn.Render("could not load week: " + m.err.Error())
	}
	peak := 1
	for _, d := range m.days {
		peak = max(peak, d.Total)
	}
	barWidth := max(m.width-30, 10)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Week of "+m.weekStart) + theme.Muted.Render(fmt.Sprintf("  %d sends", m.counts.Total)) + "\n\n")
	for _, d := range m.days {
		sb.WriteString(dayLabel(d.Date) + "  " + stack(d.Bars, d.Total*barWidth/peak) + " " + m.total(d.Total) + "\n")
	}
	return theme.Pane.Render(sb.String())
}

func (m Model) total(n int) string {
	s := fmt.Sprintf("%d", n)
	if m.goal > 0 && n >= m.goal {
		return theme.Hot.Render(s + " ✓")
	}
	return theme.Muted.Render(s)
}

// stack draws one day as a single bar split by grade, easiest first.
func stack(levels []ringdto.LevelOutput, width int) string {
	total := 0
	for _, l := range levels {
		total += l.Count
	}
	if total == 0 || width <= 0 {
		return theme.Muted.Render("·")
	}
	var sb strings.Builder
	used := 0
	for i, l := range levels {
		n := l.Count * width / total
		if i == len(levels)-1 {
			n = width - used
		}
		used += n
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(l.ColorHex)).Render(strings.Repeat("█", n)))
	}
	return sb.String()
}

func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon 01-02")
}
