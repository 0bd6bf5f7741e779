package dto

import "ascent/internal/modules/ring/domain"

// DayRingInput selects a ring. An empty Discipline draws the combined ring.
type DayRingInput struct {
	Date       string `validate:"required,datetime=2006-01-02"`
	Discipline string
}

type ArcOutput struct {
	Grade        string
	Count        int
	StartDegrees float64
	SweepDegrees float64
	Tier         int
	Shade        int
	ColorHex     string
	ColorToken   string
}

type DayRingOutput struct {
	Date       string
	Discipline string
	Total      int
	Arcs       []ArcOutput
}

// GoalInput asks for a goal ring. Goal 0 uses the configured daily goal.
type GoalInput struct {
	Date       string `validate:"required,datetime=2006-01-02"`
	Discipline string
	Goal       int `validate:"gte=0"`
}

type GoalOutput struct {
	Value            float64
	Goal             float64
	FullLoops        int
	Remainder        float64
	ProgressFraction float64
	SweepDegrees     float64
	TrackHex         string
	TrackOpacity     float64
	ProgressHex      string
}

type DualOutput struct {
	Date    string
	Boulder GoalOutput
	Rope    GoalOutput
}

type WeekInput struct {
	WeekStart  string `validate:"required,datetime=2006-01-02"`
	Discipline string
}

// DayStackOutput is one day of a week view: a stacked bar and a mini ring.
type DayStackOutput struct {
	Date  string
	Total int
	Bars  []LevelOutput
	Arcs  []ArcOutput
}

type PyramidInput struct {
	From       string `validate:"required,datetime=2006-01-02"`
	To         string `validate:"required,datetime=2006-01-02"`
	Discipline string
}

type LevelOutput struct {
	Grade    string
	Count    int
	ColorHex string
}

func FromArc(a domain.Arc) ArcOutput {
	return ArcOutput{
		Grade:        a.Grade,
		Count:        a.Count,
		StartDegrees: a.StartDegrees,
		SweepDegrees: a.SweepDegrees,
		Tier:         a.Color.Tier,
		Shade:        a.Color.Shade,
		ColorHex:     a.Color.Hex,
		ColorToken:   a.Color.Token,
	}
}

func FromArcs(arcs []domain.Arc) []ArcOutput {
	out := make([]ArcOutput, 0, len(arcs))
	for _, a := range arcs {
		out = append(out, FromArc(a))
	}
	return out
}

func FromGoal(g domain.GoalRingState) GoalOutput {
	return GoalOutput{
		Value:            g.Value,
		Goal:             g.Goal,
		FullLoops:        g.FullLoops,
		Remainder:        g.Remainder,
		ProgressFraction: g.ProgressFraction,
		SweepDegrees:     g.SweepDegrees,
		TrackHex:         g.Track.Color.Hex,
		TrackOpacity:     g.Track.Opacity,
		ProgressHex:      g.Progress.Hex,
	}
}

func FromLevels(levels []domain.Level) []LevelOutput {
	out := make([]LevelOutput, 0, len(levels))
	for _, l := range levels {
		out = append(out, LevelOutput{Grade: l.Grade, Count: l.Count, ColorHex: l.Color.Hex})
	}
	return out
}
