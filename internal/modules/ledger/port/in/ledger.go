package in

import (
	"context"

	"ascent/internal/modules/ledger/dto"
)

type Usecase interface {
	Log(ctx context.Context, input dto.LogInput) (dto.LogOutput, error)
	Remove(ctx context.Context, input dto.RemoveInput) (dto.RemoveOutput, error)
	ResetDay(ctx context.Context, input dto.ResetDayInput) (dto.ResetDayOutput, error)
	DayTotal(ctx context.Context, input dto.DayInput) (dto.DayTotalOutput, error)
	ListDay(ctx context.Context, input dto.DayInput) ([]dto.EntryOutput, error)
	Rows(ctx context.Context) ([]dto.EntryOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
