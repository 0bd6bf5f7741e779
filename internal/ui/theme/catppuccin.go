package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Catppuccin Mocha. Grade hues come from the grade palette; these are the
// chrome around them.
const (
	BaseHex     = "#1e1e2e"
	MantleHex   = "#181825"
	Surface1Hex = "#45475a"
)

var (
	Base     = lipgloss.Color(BaseHex)
	Mantle   = lipgloss.Color(MantleHex)
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color(Surface1Hex)
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title   = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Hot     = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Boulder = lipgloss.NewStyle().Foreground(Peach)
	Rope    = lipgloss.NewStyle().Foreground(Sapphire)
	Warn    = lipgloss.NewStyle().Foreground(Red)
)

// Fade mixes hex into the background at opacity. Terminals have no alpha, so
// a lapped ring track is drawn in the faded colour instead.
func Fade(hex string, opacity float64) lipgloss.Color {
	fg, err := colorful.Hex(hex)
	if err != nil {
		return Surface1
	}
	if opacity >= 1 {
		return lipgloss.Color(fg.Hex())
	}
	if opacity < 0 {
		opacity = 0
	}
	bg, _ := colorful.Hex(BaseHex)
	return lipgloss.Color(bg.BlendRgb(fg, opacity).Clamped().Hex())
}

// Swatch renders text in the colour of hex.
func Swatch(hex, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(text)
}
