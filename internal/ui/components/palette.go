package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ascent/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/palette.go.
var paletteHints = []string{
	"log <grade> [delta] [boulder|rope]",
	"undo <grade> [boulder|rope]",
	"reset [boulder|rope]",
	"date <YYYY-MM-DD|today>",
	"discipline <boulder|rope|all>",
	"session:start [gym]",
	"session:end",
	"export:week",
}

const maxSuggestions = 5

// Suggestions returns the hints whose command starts with what was typed
// so far, at most limit of them.
func Suggestions(typed string, limit int) []string {
	typed = strings.ToLower(strings.TrimSpace(typed))
	word := typed
	if i := strings.IndexByte(typed, ' '); i >= 0 {
		word = typed[:i]
	}
	out := []string{}
	for _, h := range paletteHints {
		cmd := strings.SplitN(h, " ", 2)[0]
		if word == "" || strings.HasPrefix(cmd, word) {
			out = append(out, h)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

// NewPalette returns a closed palette with a logging placeholder.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "log V4 2"
	ti.CharLimit = 128
	return Palette{input: ti}
}

// Visible reports whether the palette is on screen.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the overlay width; below 20 the default width is used.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matching := Suggestions(p.input.Value(), maxSuggestions); len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
