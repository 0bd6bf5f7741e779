package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	ledgerdomain "ascent/internal/modules/ledger/domain"
	ledgerdto "ascent/internal/modules/ledger/dto"
	ledgerin "ascent/internal/modules/ledger/port/in"
	ringdomain "ascent/internal/modules/ring/domain"
	"ascent/internal/modules/rollup/domain"
	"ascent/internal/modules/rollup/dto"
	rollupin "ascent/internal/modules/rollup/port/in"
	"ascent/internal/modules/rollup/service"
	"ascent/internal/platform/calendar"
	apperrors "ascent/internal/platform/errors"
)

var validate = validator.New()

type Interactor struct {
	svc    *service.RollupService
	ledger ledgerin.Usecase
	goals  ringdomain.Goals
}

func NewInteractor(svc *service.RollupService, ledger ledgerin.Usecase, goals ringdomain.Goals) rollupin.Usecase {
	return &Interactor{svc: svc, ledger: ledger, goals: goals}
}

func (i *Interactor) CountsForWeek(ctx context.Context, input dto.WeekInput) (dto.WeekOutput, error) {
	if err := check(input); err != nil {
		return dto.WeekOutput{}, err
	}
	discipline, err := ledgerdomain.ParseOptionalDiscipline(input.Discipline)
	if err != nil {
		return dto.WeekOutput{}, err
	}
	rows, err := i.rows(ctx)
	if err != nil {
		return dto.WeekOutput{}, err
	}
	days, total := dto.FromDays(domain.CountsForWeek(rows, calendar.Date(input.WeekStart), discipline))
	return dto.WeekOutput{WeekStart: input.WeekStart, Discipline: input.Discipline, Days: days, Total: total}, nil
}

func (i *Interactor) MonthMap(ctx context.Context, input dto.MonthInput) (dto.MonthMapOutput, error) {
	if err := check(input); err != nil {
		return dto.MonthMapOutput{}, err
	}
	anchor := calendar.Date(input.Anchor)
	percents, err := i.svc.BuildMonthMap(ctx, anchor)
	if err != nil {
		return dto.MonthMapOutput{}, err
	}
	out := dto.MonthMapOutput{Anchor: input.Anchor, Percent: make(map[string]float64, len(percents))}
	for _, day := range anchor.MonthDays() {
		out.Days = append(out.Days, string(day))
		out.Percent[string(day)] = percents[day]
	}
	return out, nil
}

func (i *Interactor) MonthCells(ctx context.Context, input dto.MonthInput) ([]dto.CellOutput, error) {
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
	cells, err := i.svc.MonthCells(ctx, calendar.Date(input.Anchor), rows, discipline, i.goals)
	if err != nil {
		return nil, err
	}
	return dto.FromCells(cells), nil
}

func (i *Interactor) ExportWeek(ctx context.Context, input dto.WeekInput) (dto.ExportOutput, error) {
	if err := check(input); err != nil {
		return dto.ExportOutput{}, err
	}
	rows, err := i.rows(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	path, err := i.svc.ExportWeek(ctx, calendar.Date(input.WeekStart), rows, i.goals)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{WeekStart: input.WeekStart, Path: path}, nil
}

func (i *Interactor) rows(ctx context.Context) ([]ledgerdomain.LogEntry, error) {
	entries, err := i.ledger.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return ledgerdto.Entries(entries), nil
}

func check(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}
