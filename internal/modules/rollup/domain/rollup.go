package domain

import (
	"math"

	gradedomain "ascent/internal/modules/grade/domain"
	ledgerdomain "ascent/internal/modules/ledger/domain"
	ringdomain "ascent/internal/modules/ring/domain"
	"ascent/internal/platform/calendar"
)

const (
	DaysPerWeek = 7
	// PlanGoal is the outer ring goal of a calendar cell, in percent.
	PlanGoal = 100
)

type DayCount struct {
	Date  calendar.Date
	Count int
}

// CountsForWeek totals each of the seven days from weekStart. Days without
// rows are present with a zero count. A nil discipline counts both.
func CountsForWeek(rows []ledgerdomain.LogEntry, weekStart calendar.Date, discipline *ledgerdomain.Discipline) []DayCount {
	days := make([]DayCount, DaysPerWeek)
	index := make(map[calendar.Date]int, DaysPerWeek)
	for i := range days {
		days[i].Date = weekStart.AddDays(i)
		index[days[i].Date] = i
	}
	for _, row := range rows {
		i, ok := index[row.Date]
		if !ok || row.Count <= 0 {
			continue
		}
		if discipline != nil && row.Discipline != *discipline {
			continue
		}
		days[i].Count += row.Count
	}
	return days
}

func AsMap(days []DayCount) map[calendar.Date]int {
	out := make(map[calendar.Date]int, len(days))
	for _, d := range days {
		out[d.Date] = d.Count
	}
	return out
}

// CountsForDays totals rows per day for an arbitrary set of days.
func CountsForDays(rows []ledgerdomain.LogEntry, days []calendar.Date, discipline *ledgerdomain.Discipline) map[calendar.Date]int {
	out := make(map[calendar.Date]int, len(days))
	for _, d := range days {
		out[d] = 0
	}
	for _, row := range rows {
		if _, ok := out[row.Date]; !ok || row.Count <= 0 {
			continue
		}
		if discipline != nil && row.Discipline != *discipline {
			continue
		}
		out[row.Date] += row.Count
	}
	return out
}

// ClampPercent keeps plan completion within 0..100. NaN reads as 0.
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > PlanGoal:
		return PlanGoal
	default:
		return p
	}
}

// Cell is one calendar day: plan completion on the outer ring and the
// logged count against the daily goal on the inner ring.
type Cell struct {
	Date        calendar.Date
	PlanPercent float64
	Plan        ringdomain.GoalRingState
	LogCount    int
	Log         ringdomain.GoalRingState
}

func NewCell(date calendar.Date, planPercent float64, logCount, logGoal int, logColor gradedomain.Color) Cell {
	planPercent = ClampPercent(planPercent)
	return Cell{
		Date:        date,
		PlanPercent: planPercent,
		Plan:        ringdomain.GoalRing(planPercent, PlanGoal, ringdomain.PlanColor),
		LogCount:    logCount,
		Log:         ringdomain.GoalRing(float64(logCount), float64(logGoal), logColor),
	}
}
