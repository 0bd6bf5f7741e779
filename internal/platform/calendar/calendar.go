package calendar

import (
	"fmt"
	"strings"
	"time"

	apperrors "ascent/internal/platform/errors"
)

const Layout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. The ledger, roll-ups and plan
// notes all key on it, so it carries no zone.
type Date string

func Parse(raw string) (Date, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, raw)
	}
	return Of(t), nil
}

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date {
	return Date(t.Format(Layout))
}

func (d Date) Valid() bool {
	_, err := time.Parse(Layout, string(d))
	return err == nil
}

// Time returns midnight UTC of the day. Invalid dates map to the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) AddDays(n int) Date {
	return Of(d.Time().AddDate(0, 0, n))
}

func (d Date) String() string { return string(d) }

// MonthDays lists every day of d's month in order.
func (d Date) MonthDays() []Date {
	t := d.Time()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	n := first.AddDate(0, 1, -1).Day()
	out := make([]Date, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Of(first.AddDate(0, 0, i)))
	}
	return out
}

// WeekStart returns the most recent day on or before d that falls on first.
func WeekStart(d Date, first time.Weekday) Date {
	offset := (int(d.Time().Weekday()) - int(first) + 7) % 7
	return d.AddDays(-offset)
}

// ParseWeekday accepts english day names such as "monday" or "Sun".
func ParseWeekday(raw string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if name == full || (len(name) >= 3 && strings.HasPrefix(full, name)) {
			return wd, nil
		}
	}
	return time.Monday, fmt.Errorf("%w: unknown weekday %q", apperrors.ErrInvalidInput, raw)
}
