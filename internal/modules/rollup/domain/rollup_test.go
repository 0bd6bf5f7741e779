package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerdomain "ascent/internal/modules/ledger/domain"
	ringdomain "ascent/internal/modules/ring/domain"
	"ascent/internal/modules/rollup/domain"
	"ascent/internal/platform/calendar"
)

func boulder() *ledgerdomain.Discipline {
	d := ledgerdomain.Boulder
	return &d
}

func TestCountsForWeekAlwaysSevenDays(t *testing.T) {
	t.Parallel()

	rows := []ledgerdomain.LogEntry{
		{ID: "1", Date: "2024-05-06", Discipline: ledgerdomain.Boulder, Grade: "V3", Count: 2},
		{ID: "2", Date: "2024-05-06", Discipline: ledgerdomain.Rope, Grade: "5.10a", Count: 1},
		{ID: "3", Date: "2024-05-08", Discipline: ledgerdomain.Boulder, Grade: "V5", Count: 4},
		{ID: "4", Date: "2024-05-13", Discipline: ledgerdomain.Boulder, Grade: "V5", Count: 9},
	}

	days := domain.CountsForWeek(rows, "2024-05-06", boulder())
	require.Len(t, days, domain.DaysPerWeek)
	assert.Equal(t, calendar.Date("2024-05-06"), days[0].Date)
	assert.Equal(t, calendar.Date("2024-05-12"), days[6].Date)

	m := domain.AsMap(days)
	assert.Equal(t, 2, m["2024-05-06"])
	assert.Equal(t, 0, m["2024-05-07"])
	assert.Equal(t, 4, m["2024-05-08"])
	_, outside := m["2024-05-13"]
	assert.False(t, outside)

	both := domain.AsMap(domain.CountsForWeek(rows, "2024-05-06", nil))
	assert.Equal(t, 3, both["2024-05-06"])
}

func TestCountsForWeekEmpty(t *testing.T) {
	t.Parallel()

	days := domain.CountsForWeek(nil, "2024-12-30", nil)
	require.Len(t, days, 7)
	assert.Equal(t, calendar.Date("2025-01-05"), days[6].Date)
	for _, d := range days {
		assert.Zero(t, d.Count)
	}
}

func TestCountsForDays(t *testing.T) {
	t.Parallel()

	rows := []ledgerdomain.LogEntry{
		{ID: "1", Date: "2024-02-29", Discipline: ledgerdomain.Rope, Grade: "5.9", Count: 3},
	}
	got := domain.CountsForDays(rows, calendar.Date("2024-02-01").MonthDays(), nil)
	assert.Len(t, got, 29)
	assert.Equal(t, 3, got["2024-02-29"])
	assert.Zero(t, domain.CountsForDays(rows, calendar.Date("2024-02-01").MonthDays(), boulder())["2024-02-29"])
}

func TestClampPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, domain.ClampPercent(-5))
	assert.Equal(t, 100.0, domain.ClampPercent(140))
	assert.Equal(t, 42.5, domain.ClampPercent(42.5))
	assert.Equal(t, 0.0, domain.ClampPercent(math.NaN()))
}

func TestNewCellRings(t *testing.T) {
	t.Parallel()

	cell := domain.NewCell("2024-05-06", 150, 12, 10, ringdomain.BoulderColor)
	assert.Equal(t, 100.0, cell.PlanPercent)
	assert.Equal(t, 1, cell.Plan.FullLoops)
	assert.Equal(t, 1.0, cell.Plan.ProgressFraction)
	assert.Equal(t, 1, cell.Log.FullLoops)
	assert.InDelta(t, 0.2, cell.Log.ProgressFraction, 1e-9)

	empty := domain.NewCell("2024-05-07", 0, 0, 10, ringdomain.BoulderColor)
	assert.Zero(t, empty.Plan.SweepDegrees)
	assert.Zero(t, empty.Log.SweepDegrees)
}
