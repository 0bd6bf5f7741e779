package domain

import (
	"sort"

	gradedomain "ascent/internal/modules/grade/domain"
	ledgerdomain "ascent/internal/modules/ledger/domain"
	"ascent/internal/platform/calendar"
)

// GradeCount is the total for one grade on one ring. It is derived on every
// read and never stored.
type GradeCount struct {
	Grade string
	Count int
}

// BuildSegments sums the rows of date by grade. A nil discipline merges both
// disciplines. Order follows first appearance in rows; callers that need
// difficulty order sort for themselves.
func BuildSegments(rows []ledgerdomain.LogEntry, date calendar.Date, discipline *ledgerdomain.Discipline) []GradeCount {
	out := []GradeCount{}
	index := map[string]int{}
	for _, row := range rows {
		if row.Date != date || row.Count <= 0 {
			continue
		}
		if discipline != nil && row.Discipline != *discipline {
			continue
		}
		if i, ok := index[row.Grade]; ok {
			out[i].Count += row.Count
			continue
		}
		index[row.Grade] = len(out)
		out = append(out, GradeCount{Grade: row.Grade, Count: row.Count})
	}
	return out
}

// byDifficulty returns the positive segments sorted easiest first.
func byDifficulty(segments []GradeCount) []GradeCount {
	out := make([]GradeCount, 0, len(segments))
	for _, s := range segments {
		if s.Count > 0 {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return gradedomain.Less(out[i].Grade, out[j].Grade)
	})
	return out
}

// Level is one bar of a pyramid or a stacked day bar.
type Level struct {
	Grade string
	Count int
	Color gradedomain.Color
}

// Pyramid lists grades hardest first, the way a grade pyramid is drawn top
// down.
func Pyramid(segments []GradeCount) []Level {
	sorted := byDifficulty(segments)
	out := make([]Level, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		s := sorted[i]
		out = append(out, Level{Grade: s.Grade, Count: s.Count, Color: gradedomain.ColorForLabel(s.Grade)})
	}
	return out
}

// Stack lists grades easiest first, bottom of the bar to the top.
func Stack(segments []GradeCount) []Level {
	sorted := byDifficulty(segments)
	out := make([]Level, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, Level{Grade: s.Grade, Count: s.Count, Color: gradedomain.ColorForLabel(s.Grade)})
	}
	return out
}
