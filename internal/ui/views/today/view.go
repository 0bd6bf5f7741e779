package today

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ringdto "ascent/internal/modules/ring/dto"
	"ascent/internal/ui/components"
	"ascent/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RingPort interface {
	DayRing(ctx context.Context, date, discipline string) (ringdto.DayRingOutput, error)
	Dual(ctx context.Context, date string) (ringdto.DualOutput, error)
	Pyramid(ctx context.Context, from, to, discipline string) ([]ringdto.LevelOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Date   string
	Ring   ringdto.DayRingOutput
	Dual   ringdto.DualOutput
	Levels []ringdto.LevelOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       RingPort
	date       string
	discipline string
	ring       ringdto.DayRingOutput
	dual       ringdto.DualOutput
	levels     []ringdto.LevelOutput
	err        error
	width      int
	height     int
}

func New(port RingPort) Model {
	return Model{port: port}
}

// Load fetches everything shown for date. An empty discipline is the
// combined ring.
func (m *Model) Load(date, discipline string) tea.Cmd {
	m.date = date
	m.discipline = discipline
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Date: date}
		}
		ctx := context.Background()
		ring, err := port.DayRing(ctx, date, discipline)
		if err != nil {
			return LoadedMsg{Date: date, Err: err}
		}
		dual, err := port.Dual(ctx, date)
		if err != nil {
			return LoadedMsg{Date: date, Err: err}
		}
		levels, err := port.Pyramid(ctx, date, date, discipline)
		return LoadedMsg{Date: date, Ring: ring, Dual: dual, Levels: levels, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		if msg.Date != m.date {
			return m, nil
		}
		m.err = msg.Err
		if msg.Err == nil {
			m.ring = msg.Ring
			m.dual = msg.Dual
			m.levels = msg.Levels
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Warn.Render("could not load " + m.date + ": " + m.err.Error())
	}
	radius := ringRadius(m.height)

	label := "all"
	if m.discipline != "" {
		label = m.discipline
	}
	header := theme.Title.Render(m.date) + theme.Muted.Render(fmt.Sprintf("  %s  %d sends", label, m.ring.Total))

	ring := theme.Pane.Render(lipgloss.JoinVertical(lipgloss.Center,
		components.RenderArcs(m.ring.Arcs, radius),
		"",
		components.Legend(m.ring.Arcs),
	))

	goals := theme.Pane.Render(lipgloss.JoinVertical(lipgloss.Center,
		goalBlock("boulder", m.dual.Boulder, max(radius/2, 2)),
		"",
		goalBlock("rope", m.dual.Rope, max(radius/2, 2)),
	))

	bars := theme.Pane.Render(theme.Title.Render("Grades") + "\n" + components.Bars(m.levels, max(m.width/4, 8)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, ring, " ", goals, " ", bars)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

func goalBlock(name string, g ringdto.GoalOutput, radius int) string {
	var sb strings.Builder
	sb.WriteString(components.RenderGoal(g, radius))
	sb.WriteString("\n")
	caption := fmt.Sprintf("%s %.0f/%.0f", name, g.Value, g.Goal)
	if g.FullLoops > 0 {
		caption += fmt.Sprintf("  x%d", g.FullLoops)
	}
	sb.WriteString(theme.Muted.Render(caption))
	return sb.String()
}

func ringRadius(height int) int {
	r := (height - 10) / 2
	switch {
	case r < 3:
		return 3
	case r > 8:
		return 8
	default:
		return r
	}
}
