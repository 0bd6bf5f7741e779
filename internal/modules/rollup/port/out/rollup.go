package out

import (
	"context"

	"ascent/internal/platform/calendar"
)

// PlanCompletion reports how much of a day's training plan was completed,
// in percent. Values outside 0..100 are clamped by the caller.
type PlanCompletion interface {
	PercentForDate(ctx context.Context, date calendar.Date) (float64, error)
}

// WeekNoteWriter stores a rendered week summary and returns where it went.
type WeekNoteWriter interface {
	WriteWeek(ctx context.Context, weekStart calendar.Date, summary string) (string, error)
}
