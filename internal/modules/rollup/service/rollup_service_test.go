package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerdomain "ascent/internal/modules/ledger/domain"
	ringdomain "ascent/internal/modules/ring/domain"
	"ascent/internal/modules/rollup/service"
	"ascent/internal/platform/calendar"
	"ascent/internal/platform/logging"
)

type fakePlans struct {
	percents map[calendar.Date]float64
	failing  map[calendar.Date]bool
	delay    time.Duration

	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakePlans) PercentForDate(ctx context.Context, date calendar.Date) (float64, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.failing[date] {
		return 0, errors.New("note unreadable")
	}
	return f.percents[date], nil
}

type fakeNotes struct {
	mu      sync.Mutex
	written map[calendar.Date]string
}

func (f *fakeNotes) WriteWeek(_ context.Context, weekStart calendar.Date, summary string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.written == nil {
		f.written = map[calendar.Date]string{}
	}
	f.written[weekStart] = summary
	return "/vault/Climbing.md", nil
}

func TestBuildMonthMapCoversEveryDayAndClamps(t *testing.T) {
	t.Parallel()

	plans := &fakePlans{
		percents: map[calendar.Date]float64{
			"2024-02-01": 50,
			"2024-02-10": 130,
			"2024-02-11": -20,
		},
		failing: map[calendar.Date]bool{"2024-02-12": true},
	}
	svc := service.NewRollupService(plans, nil, logging.Discard())

	got, err := svc.BuildMonthMap(context.Background(), "2024-02-15")
	require.NoError(t, err)
	require.Len(t, got, 29)
	assert.Equal(t, 50.0, got["2024-02-01"])
	assert.Equal(t, 100.0, got["2024-02-10"])
	assert.Equal(t, 0.0, got["2024-02-11"])
	assert.Equal(t, 0.0, got["2024-02-12"])
	assert.Equal(t, 0.0, got["2024-02-29"])
}

func TestBuildMonthMapBoundsConcurrency(t *testing.T) {
	t.Parallel()

	plans := &fakePlans{delay: 5 * time.Millisecond}
	svc := service.NewRollupService(plans, nil, logging.Discard())

	got, err := svc.BuildMonthMap(context.Background(), "2024-01-31")
	require.NoError(t, err)
	assert.Len(t, got, 31)
	assert.LessOrEqual(t, plans.peak.Load(), int32(service.DefaultFetchLimit))
}

func TestBuildMonthMapCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := service.NewRollupService(&fakePlans{}, nil, logging.Discard())

	_, err := svc.BuildMonthMap(ctx, "2024-03-01")
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildMonthMapWithoutProvider(t *testing.T) {
	t.Parallel()

	svc := service.NewRollupService(nil, nil, logging.Discard())
	got, err := svc.BuildMonthMap(context.Background(), "2023-04-09")
	require.NoError(t, err)
	assert.Len(t, got, 30)

	_, err = svc.BuildMonthMap(context.Background(), "April")
	require.Error(t, err)
}

func TestMonthCellsPairsPlanAndLogRings(t *testing.T) {
	t.Parallel()

	plans := &fakePlans{percents: map[calendar.Date]float64{"2024-05-02": 75}}
	svc := service.NewRollupService(plans, nil, logging.Discard())
	rows := []ledgerdomain.LogEntry{
		{ID: "a", Date: "2024-05-02", Discipline: ledgerdomain.Boulder, Grade: "V4", Count: 15},
		{ID: "b", Date: "2024-05-02", Discipline: ledgerdomain.Rope, Grade: "5.11a", Count: 3},
	}
	b := ledgerdomain.Boulder

	cells, err := svc.MonthCells(context.Background(), "2024-05-20", rows, &b, ringdomain.Goals{Boulder: 10, Rope: 6})
	require.NoError(t, err)
	require.Len(t, cells, 31)

	cell := cells[1]
	assert.Equal(t, calendar.Date("2024-05-02"), cell.Date)
	assert.Equal(t, 75.0, cell.PlanPercent)
	assert.InDelta(t, 270.0, cell.Plan.SweepDegrees, 1e-9)
	assert.Equal(t, 15, cell.LogCount)
	assert.Equal(t, 1, cell.Log.FullLoops)
	assert.InDelta(t, 0.5, cell.Log.ProgressFraction, 1e-9)
	assert.Equal(t, ringdomain.BoulderColor, cell.Log.Progress)
	assert.Zero(t, cells[0].LogCount)
}

func TestExportWeekRendersTable(t *testing.T) {
	t.Parallel()

	notes := &fakeNotes{}
	svc := service.NewRollupService(nil, notes, logging.Discard())
	rows := []ledgerdomain.LogEntry{
		{ID: "a", Date: "2024-05-06", Discipline: ledgerdomain.Boulder, Grade: "V2", Count: 12},
		{ID: "b", Date: "2024-05-07", Discipline: ledgerdomain.Rope, Grade: "5.10b", Count: 2},
	}

	path, err := svc.ExportWeek(context.Background(), "2024-05-06", rows, ringdomain.Goals{Boulder: 10, Rope: 6})
	require.NoError(t, err)
	assert.Equal(t, "/vault/Climbing.md", path)

	table := notes.written["2024-05-06"]
	assert.Contains(t, table, "## Week of 2024-05-06")
	assert.Contains(t, table, "| Mon 2024-05-06 | 12 | 0 | boulder x1 |")
	assert.Contains(t, table, "| Tue 2024-05-07 | 0 | 2 |  |")
	assert.Contains(t, table, "| **Total** | 12 | 2 | |")
	// heading plus seven day rows
	assert.Equal(t, 8, strings.Count(table, " 2024-05-"))
}

func TestExportWeekWithoutWriter(t *testing.T) {
	t.Parallel()

	svc := service.NewRollupService(nil, nil, logging.Discard())
	_, err := svc.ExportWeek(context.Background(), "2024-05-06", nil, ringdomain.Goals{})
	require.Error(t, err)
}
