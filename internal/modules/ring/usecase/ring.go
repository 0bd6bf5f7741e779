package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	ledgerdomain "ascent/internal/modules/ledger/domain"
	ledgerdto "ascent/internal/modules/ledger/dto"
	ledgerin "ascent/internal/modules/ledger/port/in"
	"ascent/internal/modules/ring/domain"
	"ascent/internal/modules/ring/dto"
	ringin "ascent/internal/modules/ring/port/in"
	"ascent/internal/platform/calendar"
	apperrors "ascent/internal/platform/errors"
)

var validate = validator.New()

// maxPyramidDays bounds the date range a pyramid scans.
const maxPyramidDays = 366 * 5

// Interactor derives every ring from a fresh ledger read. Nothing is cached.
type Interactor struct {
	ledger ledgerin.Usecase
	goals  domain.Goals
}

func NewInteractor(ledger ledgerin.Usecase, goals domain.Goals) ringin.Usecase {
	return &Interactor{ledger: ledger, goals: goals}
}

func (i *Interactor) DayRing(ctx context.Context, input dto.DayRingInput) (dto.DayRingOutput, error) {
	if err := check(input); err != nil {
		return dto.DayRingOutput{}, err
	}
	discipline, err := ledgerdomain.ParseOptionalDiscipline(input.Discipline)
	if err != nil {
		return dto.DayRingOutput{}, err
	}
	rows, err := i.rows(ctx)
	if err != nil {
		return dto.DayRingOutput{}, err
	}
	segments := domain.BuildSegments(rows, calendar.Date(input.Date), discipline)
	out := dto.DayRingOutput{
		Date:  input.Date,
		Total: total(segments),
		Arcs:  dto.FromArcs(domain.ComputeRingArcs(segments)),
	}
	if discipline != nil {
		out.Discipline = string(*discipline)
	}
	return out, nil
}

func (i *Interactor) GoalProgress(ctx context.Context, input dto.GoalInput) (dto.GoalOutput, error) {
	if err := check(input); err != nil {
		return dto.GoalOutput{}, err
	}
	discipline, err := ledgerdomain.ParseOptionalDiscipline(input.Discipline)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	rows, err := i.rows(ctx)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	goal := input.Goal
	if goal == 0 {
		goal = i.goals.For(discipline)
	}
	value := total(domain.BuildSegments(rows, calendar.Date(input.Date), discipline))
	return dto.FromGoal(domain.GoalRing(float64(value), float64(goal), domain.ProgressColor(discipline))), nil
}

// DualRing pairs the bouldering and roped goal rings of one day.
func (i *Interactor) DualRing(ctx context.Context, date string) (dto.DualOutput, error) {
	boulder, err := i.GoalProgress(ctx, dto.GoalInput{Date: date, Discipline: string(ledgerdomain.Boulder)})
	if err != nil {
		return dto.DualOutput{}, err
	}
	rope, err := i.GoalProgress(ctx, dto.GoalInput{Date: date, Discipline: string(ledgerdomain.Rope)})
	if err != nil {
		return dto.DualOutput{}, err
	}
	return dto.DualOutput{Date: date, Boulder: boulder, Rope: rope}, nil
}

// WeekStacks returns seven days starting at WeekStart, each with a stacked
// bar and a mini ring.
func (i *Interactor) WeekStacks(ctx context.Context, input dto.WeekInput) ([]dto.DayStackOutput, error) {
	if err := check(input); err != nil {
		return nil, err
	}
	discipline, err := ledgerdomain.ParseOptionalDiscipline(input.Discipline)
	if err != nil {
		return nil, err
	}
	rows, err := i.rows(ctx)
	if err != nil {
		return nil, err
	}
	start := calendar.Date(input.WeekStart)
	out := make([]dto.DayStackOutput, 0, 7)
	for d := 0; d < 7; d++ {
		day := start.AddDays(d)
		segments := domain.BuildSegments(rows, day, discipline)
		out = append(out, dto.DayStackOutput{
			Date:  string(day),
			Total: total(segments),
			Bars:  dto.FromLevels(domain.Stack(segments)),
			Arcs:  dto.FromArcs(domain.ComputeRingArcs(segments)),
		})
	}
	return out, nil
}

// Pyramid aggregates every day in [From, To] into one grade pyramid.
func (i *Interactor) Pyramid(ctx context.Context, input dto.PyramidInput) ([]dto.LevelOutput, error) {
	if err := check(input); err != nil {
		return nil, err
	}
	discipline, err := ledgerdomain.ParseOptionalDiscipline(input.Discipline)
	if err != nil {
		return nil, err
	}
	from, to := calendar.Date(input.From), calendar.Date(input.To)
	if to < from {
		return nil, fmt.Errorf("%w: range ends before it starts", apperrors.ErrInvalidInput)
	}
	rows, err := i.rows(ctx)
	if err != nil {
		return nil, err
	}
	merged := []domain.GradeCount{}
	index := map[string]int{}
	for day, n := from, 0; day <= to && n < maxPyramidDays; day, n = day.AddDays(1), n+1 {
		for _, s := range domain.BuildSegments(rows, day, discipline) {
			if k, ok := index[s.Grade]; ok {
				merged[k].Count += s.Count
				continue
			}
			index[s.Grade] = len(merged)
			merged = append(merged, s)
		}
	}
	return dto.FromLevels(domain.Pyramid(merged)), nil
}

func (i *Interactor) rows(ctx context.Context) ([]ledgerdomain.LogEntry, error) {
	entries, err := i.ledger.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return ledgerdto.Entries(entries), nil
}

func total(segments []domain.GradeCount) int {
	sum := 0
	for _, s := range segments {
		sum += s.Count
	}
	return sum
}

func check(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}
