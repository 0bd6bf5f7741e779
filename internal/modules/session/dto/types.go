package dto

import (
	"time"

	"ascent/internal/modules/session/domain"
)

type StartInput struct {
	GymName string `validate:"max=80"`
}

// StartOutput describes the new session and whatever happened to the one
// that was running before it.
type StartOutput struct {
	GymName          string
	StartedAt        time.Time
	Finished         *EntryOutput
	DiscardedElapsed string
	Warning          string
}

type EndOutput struct {
	Entry    EntryOutput
	NotePath string
	Warning  string
}

type ActiveSessionOutput struct {
	GymName   string
	StartedAt time.Time
	Elapsed   string
}

// HistoryInput limits the listing to the newest Limit entries; 0 means all.
type HistoryInput struct {
	Limit int `validate:"gte=0"`
}

type EntryOutput struct {
	ID            string
	Date          string
	StartTime     time.Time
	EndTime       time.Time
	DurationLabel string
	GymName       string
}

func FromEntry(e domain.Entry) EntryOutput {
	return EntryOutput{
		ID:            e.ID,
		Date:          string(e.Date),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		DurationLabel: e.DurationLabel,
		GymName:       e.GymName,
	}
}
