package components

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	ringdto "ascent/internal/modules/ring/dto"
	"ascent/internal/ui/theme"
)

const (
	fullGlyph  = "█"
	trackGlyph = "░"
)

// Terminal cells are roughly twice as tall as they are wide, so the canvas
// is sampled at two columns per row unit.
const cellAspect = 2.0

// Angle returns the clockwise angle from twelve o'clock, in [0, 360), of a
// canvas offset where dy grows downward.
func Angle(dx, dy float64) float64 {
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// ArcAt returns the index of the arc covering deg, or -1.
func ArcAt(arcs []ringdto.ArcOutput, deg float64) int {
	for i, a := range arcs {
		if deg >= a.StartDegrees && deg < a.StartDegrees+a.SweepDegrees {
			return i
		}
	}
	return -1
}

type paintFunc func(deg float64) (lipgloss.Color, string, bool)

// donut paints every cell whose distance from the centre lies within
// [inner, outer] rows.
func donut(outer, inner float64, paint paintFunc) string {
	rows := int(math.Ceil(outer))
	cols := int(math.Ceil(outer * cellAspect))
	var sb strings.Builder
	for y := -rows; y <= rows; y++ {
		for x := -cols; x <= cols; x++ {
			dx := float64(x) / cellAspect
			dy := float64(y)
			dist := math.Hypot(dx, dy)
			if dist > outer+0.25 || dist < inner-0.25 {
				sb.WriteString(" ")
				continue
			}
			color, glyph, ok := paint(Angle(dx, dy))
			if !ok {
				sb.WriteString(" ")
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(glyph))
		}
		if y < rows {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderArcs draws a grade ring. An empty ring shows only the neutral track.
func RenderArcs(arcs []ringdto.ArcOutput, radius int) string {
	outer := float64(radius)
	return donut(outer, outer*0.55, func(deg float64) (lipgloss.Color, string, bool) {
		i := ArcAt(arcs, deg)
		if i < 0 {
			return theme.Surface1, trackGlyph, true
		}
		return lipgloss.Color(arcs[i].ColorHex), fullGlyph, true
	})
}

// RenderGoal draws a goal ring: the current lap over a track that turns the
// progress colour once the goal has been lapped.
func RenderGoal(goal ringdto.GoalOutput, radius int) string {
	outer := float64(radius)
	track := theme.Fade(goal.TrackHex, goal.TrackOpacity)
	return donut(outer, outer*0.6, func(deg float64) (lipgloss.Color, string, bool) {
		if goal.SweepDegrees > 0 && deg < goal.SweepDegrees {
			return lipgloss.Color(goal.ProgressHex), fullGlyph, true
		}
		return track, trackGlyph, true
	})
}

// Pie is a one-cell summary of a goal ring for dense views.
func Pie(goal ringdto.GoalOutput) string {
	glyphs := []string{"○", "◔", "◑", "◕", "●"}
	if goal.Goal <= 0 || goal.Value <= 0 {
		return theme.Muted.Render(glyphs[0])
	}
	i := int(math.Round(goal.ProgressFraction * 4))
	if i < 1 {
		i = 1
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(goal.ProgressHex)).Render(glyphs[i])
}

// Bars renders one horizontal bar per grade level, scaled to width.
func Bars(levels []ringdto.LevelOutput, width int) string {
	if len(levels) == 0 {
		return theme.Muted.Render("nothing logged")
	}
	peak := 0
	for _, l := range levels {
		peak = max(peak, l.Count)
	}
	if width < 4 {
		width = 4
	}
	lines := make([]string, 0, len(levels))
	for _, l := range levels {
		n := l.Count * width / peak
		if n == 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(l.ColorHex)).Render(strings.Repeat(fullGlyph, n))
		lines = append(lines, padRight(l.Grade, 6)+" "+bar+" "+theme.Muted.Render(strconv.Itoa(l.Count)))
	}
	return strings.Join(lines, "\n")
}

// Legend lists each arc with its colour and count.
func Legend(arcs []ringdto.ArcOutput) string {
	if len(arcs) == 0 {
		return theme.Muted.Render("no climbs")
	}
	lines := make([]string, 0, len(arcs))
	for _, a := range arcs {
		lines = append(lines, theme.Swatch(a.ColorHex, fullGlyph+fullGlyph)+" "+padRight(a.Grade, 6)+" x"+strconv.Itoa(a.Count))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
