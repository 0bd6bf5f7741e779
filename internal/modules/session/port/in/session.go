package in

import (
	"context"

	"ascent/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	End(ctx context.Context) (dto.EndOutput, error)
	GetActive(ctx context.Context) (dto.ActiveSessionOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.EntryOutput, error)
}
