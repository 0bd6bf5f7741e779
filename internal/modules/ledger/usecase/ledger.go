package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	gradedomain "ascent/internal/modules/grade/domain"
	"ascent/internal/modules/ledger/domain"
	"ascent/internal/modules/ledger/dto"
	ledgerin "ascent/internal/modules/ledger/port/in"
	"ascent/internal/modules/ledger/service"
	"ascent/internal/platform/calendar"
	apperrors "ascent/internal/platform/errors"
)

var validate = validator.New()

type Interactor struct {
	svc *service.LedgerService
}

func NewInteractor(svc *service.LedgerService) ledgerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Log(ctx context.Context, input dto.LogInput) (dto.LogOutput, error) {
	if err := check(input); err != nil {
		return dto.LogOutput{}, err
	}
	discipline, err := domain.ParseDiscipline(input.Discipline)
	if err != nil {
		return dto.LogOutput{}, err
	}
	entry, warning, err := i.svc.Upsert(ctx, calendar.Date(input.Date), discipline, input.Grade, input.Delta)
	if err != nil {
		return dto.LogOutput{}, err
	}
	return dto.LogOutput{Entry: dto.FromEntry(entry), Deleted: entry.ID != "" && entry.Count == 0, Warning: warning}, nil
}

func (i *Interactor) Remove(ctx context.Context, input dto.RemoveInput) (dto.RemoveOutput, error) {
	if err := check(input); err != nil {
		return dto.RemoveOutput{}, err
	}
	removed, warning := i.svc.Remove(ctx, input.ID)
	return dto.RemoveOutput{Removed: removed, Warning: warning}, nil
}

func (i *Interactor) ResetDay(ctx context.Context, input dto.ResetDayInput) (dto.ResetDayOutput, error) {
	if err := check(input); err != nil {
		return dto.ResetDayOutput{}, err
	}
	discipline, err := optionalDiscipline(input.Discipline)
	if err != nil {
		return dto.ResetDayOutput{}, err
	}
	removed, warning := i.svc.ResetDay(ctx, calendar.Date(input.Date), discipline)
	return dto.ResetDayOutput{Removed: removed, Warning: warning}, nil
}

func (i *Interactor) DayTotal(_ context.Context, input dto.DayInput) (dto.DayTotalOutput, error) {
	if err := check(input); err != nil {
		return dto.DayTotalOutput{}, err
	}
	discipline, err := optionalDiscipline(input.Discipline)
	if err != nil {
		return dto.DayTotalOutput{}, err
	}
	out := dto.DayTotalOutput{Date: input.Date, Total: i.svc.DayTotal(calendar.Date(input.Date), discipline)}
	if discipline != nil {
		out.Discipline = string(*discipline)
	}
	return out, nil
}

// ListDay returns the day's rows ordered by discipline, then grade difficulty.
func (i *Interactor) ListDay(_ context.Context, input dto.DayInput) ([]dto.EntryOutput, error) {
	if err := check(input); err != nil {
		return nil, err
	}
	discipline, err := optionalDiscipline(input.Discipline)
	if err != nil {
		return nil, err
	}
	out := []dto.EntryOutput{}
	for _, row := range i.svc.Rows() {
		if row.Date != calendar.Date(input.Date) {
			continue
		}
		if discipline != nil && row.Discipline != *discipline {
			continue
		}
		out = append(out, dto.FromEntry(row))
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Discipline != out[b].Discipline {
			return out[a].Discipline < out[b].Discipline
		}
		return gradedomain.Less(out[a].Grade, out[b].Grade)
	})
	return out, nil
}

func (i *Interactor) Rows(_ context.Context) ([]dto.EntryOutput, error) {
	rows := i.svc.Rows()
	out := make([]dto.EntryOutput, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromEntry(row))
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Rows: n}, nil
}

func check(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}

func optionalDiscipline(raw string) (*domain.Discipline, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDiscipline(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
