package in

import (
	"context"

	"ascent/internal/modules/ring/dto"
	ringin "ascent/internal/modules/ring/port/in"
)

type CLIHandler struct {
	usecase ringin.Usecase
}

func NewCLIHandler(usecase ringin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) DayRing(ctx context.Context, date, discipline string) (dto.DayRingOutput, error) {
	return h.usecase.DayRing(ctx, dto.DayRingInput{Date: date, Discipline: discipline})
}

func (h CLIHandler) Goal(ctx context.Context, date, discipline string, goal int) (dto.GoalOutput, error) {
	return h.usecase.GoalProgress(ctx, dto.GoalInput{Date: date, Discipline: discipline, Goal: goal})
}

func (h CLIHandler) Dual(ctx context.Context, date string) (dto.DualOutput, error) {
	return h.usecase.DualRing(ctx, date)
}

func (h CLIHandler) Week(ctx context.Context, weekStart, discipline string) ([]dto.DayStackOutput, error) {
	return h.usecase.WeekStacks(ctx, dto.WeekInput{WeekStart: weekStart, Discipline: discipline})
}

func (h CLIHandler) Pyramid(ctx context.Context, from, to, discipline string) ([]dto.LevelOutput, error) {
	return h.usecase.Pyramid(ctx, dto.PyramidInput{From: from, To: to, Discipline: discipline})
}
