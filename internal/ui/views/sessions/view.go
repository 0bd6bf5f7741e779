package sessions

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "ascent/internal/modules/session/dto"
	"ascent/internal/ui/theme"
)

type Port interface {
	History(ctx context.Context, limit int) ([]sessiondto.EntryOutput, error)
}

type LoadedMsg struct {
	Entries []sessiondto.EntryOutput
	Err     error
}

const historyLimit = 200

type Model struct {
	port    Port
	list    viewport.Model
	entries []sessiondto.EntryOutput
	err     error
}

func New(port Port) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1)
	return Model{port: port, list: vp}
}

func (m Model) Load() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{}
		}
		entries, err := port.History(context.Background(), historyLimit)
		return LoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.Width = msg.Width - 2
		m.list.Height = msg.Height - 2
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.entries = msg.Entries
		}
		m.list.SetContent(Render(m.entries))
		m.list.GotoTop()
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Warn.Render("could not load sessions: " + m.err.Error())
	}
	return m.list.View()
}

// Render lists sessions newest first, one per line.
func Render(entries []sessiondto.EntryOutput) string {
	if len(entries) == 0 {
		return theme.Muted.Render("No sessions yet. Start one with :session:start <gym>")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%d sessions", len(entries))) + "\n\n")
	for _, e := range entries {
		gym := e.GymName
		if gym == "" {
			gym = "(no gym)"
		}
		sb.WriteString(fmt.Sprintf("%s  %s–%s  %-8s %s\n",
			e.Date,
			e.StartTime.Format("15:04"),
			e.EndTime.Format("15:04"),
			e.DurationLabel,
			gym))
	}
	return sb.String()
}
