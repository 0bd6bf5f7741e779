package dto

import (
	"ascent/internal/modules/ledger/domain"
	"ascent/internal/platform/calendar"
)

type LogInput struct {
	Date       string `validate:"required,datetime=2006-01-02"`
	Discipline string `validate:"required"`
	Grade      string `validate:"required,max=24"`
	Delta      int    `validate:"gte=-1000,lte=1000"`
}

type LogOutput struct {
	Entry   EntryOutput
	Deleted bool
	Warning string
}

type RemoveInput struct {
	ID string `validate:"required"`
}

type RemoveOutput struct {
	Removed bool
	Warning string
}

// ResetDayInput clears a day. An empty Discipline clears both.
type ResetDayInput struct {
	Date       string `validate:"required,datetime=2006-01-02"`
	Discipline string
}

type ResetDayOutput struct {
	Removed int
	Warning string
}

// DayInput selects one day. An empty Discipline means both disciplines.
type DayInput struct {
	Date       string `validate:"required,datetime=2006-01-02"`
	Discipline string
}

type DayTotalOutput struct {
	Date       string
	Discipline string
	Total      int
}

type EntryOutput struct {
	ID         string
	Date       string
	Discipline string
	Grade      string
	Count      int
}

// Entry converts the output back into a ledger row for read-only derivers.
func (e EntryOutput) Entry() domain.LogEntry {
	return domain.LogEntry{
		ID:         e.ID,
		Date:       calendar.Date(e.Date),
		Discipline: domain.Discipline(e.Discipline),
		Grade:      e.Grade,
		Count:      e.Count,
	}
}

// Entries converts a Rows result back into ledger rows.
func Entries(outs []EntryOutput) []domain.LogEntry {
	rows := make([]domain.LogEntry, 0, len(outs))
	for _, e := range outs {
		rows = append(rows, e.Entry())
	}
	return rows
}

func FromEntry(e domain.LogEntry) EntryOutput {
	return EntryOutput{
		ID:         e.ID,
		Date:       string(e.Date),
		Discipline: string(e.Discipline),
		Grade:      e.Grade,
		Count:      e.Count,
	}
}

type ReindexOutput struct {
	Rows int
}
