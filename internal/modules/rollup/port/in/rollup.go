package in

import (
	"context"

	"ascent/internal/modules/rollup/dto"
)

type Usecase interface {
	CountsForWeek(ctx context.Context, input dto.WeekInput) (dto.WeekOutput, error)
	MonthMap(ctx context.Context, input dto.MonthInput) (dto.MonthMapOutput, error)
	MonthCells(ctx context.Context, input dto.MonthInput) ([]dto.CellOutput, error)
	ExportWeek(ctx context.Context, input dto.WeekInput) (dto.ExportOutput, error)
}
