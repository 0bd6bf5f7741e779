package dto

import (
	ringdto "ascent/internal/modules/ring/dto"
	"ascent/internal/modules/rollup/domain"
)

type WeekInput struct {
	WeekStart  string `validate:"required,datetime=2006-01-02"`
	Discipline string
}

type DayCountOutput struct {
	Date  string
	Count int
}

type WeekOutput struct {
	WeekStart  string
	Discipline string
	Days       []DayCountOutput
	Total      int
}

// MonthInput names any day of the month to show.
type MonthInput struct {
	Anchor     string `validate:"required,datetime=2006-01-02"`
	Discipline string
}

// MonthMapOutput keeps Days in calendar order next to the percent map.
type MonthMapOutput struct {
	Anchor  string
	Days    []string
	Percent map[string]float64
}

type CellOutput struct {
	Date        string
	PlanPercent float64
	Plan        ringdto.GoalOutput
	LogCount    int
	Log         ringdto.GoalOutput
}

type ExportOutput struct {
	WeekStart string
	Path      string
}

func FromDays(days []domain.DayCount) ([]DayCountOutput, int) {
	out := make([]DayCountOutput, 0, len(days))
	total := 0
	for _, d := range days {
		out = append(out, DayCountOutput{Date: string(d.Date), Count: d.Count})
		total += d.Count
	}
	return out, total
}

func FromCells(cells []domain.Cell) []CellOutput {
	out := make([]CellOutput, 0, len(cells))
	for _, c := range cells {
		out = append(out, CellOutput{
			Date:        string(c.Date),
			PlanPercent: c.PlanPercent,
			Plan:        ringdto.FromGoal(c.Plan),
			LogCount:    c.LogCount,
			Log:         ringdto.FromGoal(c.Log),
		})
	}
	return out
}

// PlanChanged reports that the plan note of Date was written or removed.
type PlanChanged struct {
	Date string
	Path string
}
