package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	ledgerdomain "ascent/internal/modules/ledger/domain"
	ringdomain "ascent/internal/modules/ring/domain"
	"ascent/internal/modules/rollup/domain"
	rollupout "ascent/internal/modules/rollup/port/out"
	"ascent/internal/platform/calendar"
)

// DefaultFetchLimit bounds concurrent plan lookups for one month.
const DefaultFetchLimit = 4

type RollupService struct {
	plans  rollupout.PlanCompletion
	notes  rollupout.WeekNoteWriter
	logger *slog.Logger
	limit  int
}

func NewRollupService(plans rollupout.PlanCompletion, notes rollupout.WeekNoteWriter, logger *slog.Logger) *RollupService {
	return &RollupService{plans: plans, notes: notes, logger: logger, limit: DefaultFetchLimit}
}

// BuildMonthMap returns plan completion for every day of anchor's month.
// A failed lookup degrades that day to 0; only cancellation fails the map.
func (s *RollupService) BuildMonthMap(ctx context.Context, anchor calendar.Date) (map[calendar.Date]float64, error) {
	if !anchor.Valid() {
		return nil, fmt.Errorf("anchor date %q is not YYYY-MM-DD", anchor)
	}
	days := anchor.MonthDays()
	percents := make([]float64, len(days))
	if s.plans == nil {
		return zip(days, percents), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, day := range days {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.plans.PercentForDate(gctx, day)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				s.logger.Warn("plan completion unavailable, using 0", "date", day.String(), "error", err)
				return nil
			}
			percents[i] = domain.ClampPercent(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build month map: %w", err)
	}
	return zip(days, percents), nil
}

// MonthCells pairs the month map with logged counts for each day.
func (s *RollupService) MonthCells(ctx context.Context, anchor calendar.Date, rows []ledgerdomain.LogEntry, discipline *ledgerdomain.Discipline, goals ringdomain.Goals) ([]domain.Cell, error) {
	percents, err := s.BuildMonthMap(ctx, anchor)
	if err != nil {
		return nil, err
	}
	days := anchor.MonthDays()
	counts := domain.CountsForDays(rows, days, discipline)
	goal := goals.For(discipline)
	color := ringdomain.ProgressColor(discipline)
	cells := make([]domain.Cell, 0, len(days))
	for _, day := range days {
		cells = append(cells, domain.NewCell(day, percents[day], counts[day], goal, color))
	}
	return cells, nil
}

// ExportWeek renders the week as a markdown table and hands it to the note
// writer.
func (s *RollupService) ExportWeek(ctx context.Context, weekStart calendar.Date, rows []ledgerdomain.LogEntry, goals ringdomain.Goals) (string, error) {
	if s.notes == nil {
		return "", errors.New("week note writer is not configured")
	}
	path, err := s.notes.WriteWeek(ctx, weekStart, RenderWeek(weekStart, rows, goals))
	if err != nil {
		return "", fmt.Errorf("export week %s: %w", weekStart, err)
	}
	s.logger.Info("week exported", "week_start", weekStart.String(), "path", path)
	return path, nil
}

// RenderWeek formats per-day boulder and rope totals with the goal laps
// reached.
func RenderWeek(weekStart calendar.Date, rows []ledgerdomain.LogEntry, goals ringdomain.Goals) string {
	b, r := ledgerdomain.Boulder, ledgerdomain.Rope
	boulders := domain.CountsForWeek(rows, weekStart, &b)
	ropes := domain.CountsForWeek(rows, weekStart, &r)

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "## Week of %s\n\n", weekStart)
	sb.WriteString("| Day | Boulder | Rope | Goals met |\n|---|---:|---:|---|\n")
	totalB, totalR := 0, 0
	for i := range boulders {
		day := boulders[i].Date
		totalB += boulders[i].Count
		totalR += ropes[i].Count
		fmt.Fprintf(&sb, "| %s %s | %d | %d | %s |\n",
			day.Time().Weekday().String()[:3], day, boulders[i].Count, ropes[i].Count,
			goalMarks(boulders[i].Count, goals.Boulder, ropes[i].Count, goals.Rope))
	}
	fmt.Fprintf(&sb, "| **Total** | %d | %d | |\n", totalB, totalR)
	return sb.String()
}

func goalMarks(boulder, boulderGoal, rope, ropeGoal int) string {
	marks := []string{}
	if boulderGoal > 0 && boulder >= boulderGoal {
		marks = append(marks, fmt.Sprintf("boulder x%d", boulder/boulderGoal))
	}
	if ropeGoal > 0 && rope >= ropeGoal {
		marks = append(marks, fmt.Sprintf("rope x%d", rope/ropeGoal))
	}
	return strings.Join(marks, ", ")
}

func zip(days []calendar.Date, percents []float64) map[calendar.Date]float64 {
	out := make(map[calendar.Date]float64, len(days))
	for i, d := range days {
		out[d] = percents[i]
	}
	return out
}
