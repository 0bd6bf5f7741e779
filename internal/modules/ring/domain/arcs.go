package domain

import (
	"math"

	gradedomain "ascent/internal/modules/grade/domain"
)

// Arc is one slice of a ring. StartDegrees is measured clockwise from
// twelve o'clock; rotating to screen space is the renderer's job.
type Arc struct {
	Grade        string
	Count        int
	StartDegrees float64
	SweepDegrees float64
	Color        gradedomain.Color
}

// ComputeRingArcs turns grade counts into a closed ring ordered by grade
// difficulty. Every sweep but the last is count/total of 360; the last is
// 360 minus the running start, so the final arc ends at exactly 360.
// No positive counts means no arcs.
func ComputeRingArcs(segments []GradeCount) []Arc {
	sorted := byDifficulty(segments)
	if len(sorted) == 0 {
		return []Arc{}
	}
	total := 0
	for _, s := range sorted {
		total += s.Count
	}

	arcs := make([]Arc, 0, len(sorted))
	start := 0.0
	for i, s := range sorted {
		sweep := float64(s.Count) / float64(total) * 360
		if i == len(sorted)-1 {
			sweep = 360 - start
		}
		arcs = append(arcs, Arc{
			Grade:        s.Grade,
			Count:        s.Count,
			StartDegrees: start,
			SweepDegrees: sweep,
			Color:        gradedomain.ColorForLabel(s.Grade),
		})
		start += sweep
	}
	return arcs
}

// Opacity of the track once the goal has been lapped.
const LappedTrackOpacity = 0.35

var (
	BoulderColor  = gradedomain.Color{Tier: -1, Hex: "#fab387", Token: "boulder"}
	RopeColor     = gradedomain.Color{Tier: -1, Hex: "#74c7ec", Token: "rope"}
	PlanColor     = gradedomain.Color{Tier: -1, Hex: "#a6e3a1", Token: "plan"}
	CombinedColor = gradedomain.Color{Tier: -1, Hex: "#b4befe", Token: "combined"}
)

type Track struct {
	Color   gradedomain.Color
	Opacity float64
}

// GoalRingState describes a single-value progress ring that wraps past its
// goal. The foreground arc only ever shows the current lap; earlier laps
// are signalled by recolouring the track, never by stacking arcs.
type GoalRingState struct {
	Value            float64
	Goal             float64
	FullLoops        int
	Remainder        float64
	ProgressFraction float64
	SweepDegrees     float64
	Track            Track
	Progress         gradedomain.Color
}

// Lapped reports whether the goal has been reached at least once.
func (g GoalRingState) Lapped() bool { return g.FullLoops > 0 }

// GoalRing computes laps and the partial arc for value against goal. An
// exact non-zero multiple of the goal renders as a closed lap. Non-positive
// or non-finite inputs give an empty ring on the neutral track.
func GoalRing(value, goal float64, progress gradedomain.Color) GoalRingState {
	state := GoalRingState{
		Value:    value,
		Goal:     goal,
		Track:    Track{Color: gradedomain.Neutral, Opacity: 1},
		Progress: progress,
	}
	if !finite(value) || !finite(goal) || goal <= 0 || value <= 0 {
		return state
	}

	loops := math.Floor(value / goal)
	remainder := value - loops*goal
	if remainder < 0 || remainder >= goal {
		remainder = math.Mod(value, goal)
	}
	fraction := remainder / goal
	if remainder == 0 {
		fraction = 1
	}

	state.FullLoops = int(loops)
	state.Remainder = remainder
	state.ProgressFraction = fraction
	state.SweepDegrees = fraction * 360
	if state.FullLoops > 0 {
		state.Track = Track{Color: progress, Opacity: LappedTrackOpacity}
	}
	return state
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
