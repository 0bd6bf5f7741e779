package in

import (
	"context"

	"ascent/internal/modules/ring/dto"
)

type Usecase interface {
	DayRing(ctx context.Context, input dto.DayRingInput) (dto.DayRingOutput, error)
	GoalProgress(ctx context.Context, input dto.GoalInput) (dto.GoalOutput, error)
	DualRing(ctx context.Context, date string) (dto.DualOutput, error)
	WeekStacks(ctx context.Context, input dto.WeekInput) ([]dto.DayStackOutput, error)
	Pyramid(ctx context.Context, input dto.PyramidInput) ([]dto.LevelOutput, error)
}
