package in

import (
	"context"

	"ascent/internal/modules/ledger/dto"
	ledgerin "ascent/internal/modules/ledger/port/in"
)

type CLIHandler struct {
	usecase ledgerin.Usecase
}

func NewCLIHandler(usecase ledgerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Log(ctx context.Context, date, discipline, grade string, delta int) (dto.LogOutput, error) {
	return h.usecase.Log(ctx, dto.LogInput{Date: date, Discipline: discipline, Grade: grade, Delta: delta})
}

func (h CLIHandler) Remove(ctx context.Context, id string) (dto.RemoveOutput, error) {
	return h.usecase.Remove(ctx, dto.RemoveInput{ID: id})
}

func (h CLIHandler) ResetDay(ctx context.Context, date, discipline string) (dto.ResetDayOutput, error) {
	return h.usecase.ResetDay(ctx, dto.ResetDayInput{Date: date, Discipline: discipline})
}

func (h CLIHandler) DayTotal(ctx context.Context, date, discipline string) (dto.DayTotalOutput, error) {
	return h.usecase.DayTotal(ctx, dto.DayInput{Date: date, Discipline: discipline})
}

func (h CLIHandler) ListDay(ctx context.Context, date, discipline string) ([]dto.EntryOutput, error) {
	return h.usecase.ListDay(ctx, dto.DayInput{Date: date, Discipline: discipline})
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
