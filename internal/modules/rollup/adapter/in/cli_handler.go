package in

import (
	"context"

	"ascent/internal/modules/rollup/dto"
	rollupin "ascent/internal/modules/rollup/port/in"
)

type CLIHandler struct {
	usecase rollupin.Usecase
}

func NewCLIHandler(usecase rollupin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Week(ctx context.Context, weekStart, discipline string) (dto.WeekOutput, error) {
	return h.usecase.CountsForWeek(ctx, dto.WeekInput{WeekStart: weekStart, Discipline: discipline})
}

func (h CLIHandler) MonthMap(ctx context.Context, anchor string) (dto.MonthMapOutput, error) {
	return h.usecase.MonthMap(ctx, dto.MonthInput{Anchor: anchor})
}

func (h CLIHandler) MonthCells(ctx context.Context, anchor, discipline string) ([]dto.CellOutput, error) {
	return h.usecase.MonthCells(ctx, dto.MonthInput{Anchor: anchor, Discipline: discipline})
}

func (h CLIHandler) ExportWeek(ctx context.Context, weekStart string) (dto.ExportOutput, error) {
	return h.usecase.ExportWeek(ctx, dto.WeekInput{WeekStart: weekStart})
}
