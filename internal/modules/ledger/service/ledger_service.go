package service

import (
	"context"
	"fmt"
	"log/slog"

	"ascent/internal/modules/ledger/domain"
	ledgerout "ascent/internal/modules/ledger/port/out"
	"ascent/internal/platform/calendar"
)

type LedgerService struct {
	ledger    *domain.Ledger
	persister ledgerout.Persister
	projector ledgerout.LogIndexProjector
	logger    *slog.Logger
}

func NewLedgerService(ledger *domain.Ledger, persister ledgerout.Persister, projector ledgerout.LogIndexProjector, logger *slog.Logger) *LedgerService {
	return &LedgerService{ledger: ledger, persister: persister, projector: projector, logger: logger}
}

// Upsert applies delta and persists. The returned warning is non-empty when
// the mutation stands in memory but could not be saved.
func (s *LedgerService) Upsert(ctx context.Context, date calendar.Date, discipline domain.Discipline, grade string, delta int) (domain.LogEntry, string, error) {
	before := s.ledger.Version()
	entry, err := s.ledger.UpsertCount(date, discipline, grade, delta)
	if err != nil {
		return domain.LogEntry{}, "", err
	}
	if s.ledger.Version() == before {
		return entry, "", nil
	}
	s.logger.Debug("ledger upsert", "date", date, "discipline", discipline, "grade", entry.Grade, "delta", delta, "count", entry.Count)
	return entry, s.persist(ctx), nil
}

func (s *LedgerService) Remove(ctx context.Context, id string) (bool, string) {
	if !s.ledger.Remove(id) {
		return false, ""
	}
	s.logger.Debug("ledger remove", "id", id)
	return true, s.persist(ctx)
}

func (s *LedgerService) ResetDay(ctx context.Context, date calendar.Date, discipline *domain.Discipline) (int, string) {
	removed := s.ledger.ResetDay(date, discipline)
	if removed == 0 {
		return 0, ""
	}
	s.logger.Debug("ledger reset day", "date", date, "removed", removed)
	return removed, s.persist(ctx)
}

func (s *LedgerService) DayTotal(date calendar.Date, discipline *domain.Discipline) int {
	if discipline != nil {
		return s.ledger.CountByDateDiscipline(date, *discipline)
	}
	total := 0
	for _, d := range domain.Disciplines {
		total += s.ledger.CountByDateDiscipline(date, d)
	}
	return total
}

func (s *LedgerService) Rows() []domain.LogEntry {
	return s.ledger.Rows()
}

// Reindex rebuilds the SQL projection from the in-memory rows.
func (s *LedgerService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, fmt.Errorf("log index is not configured")
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	rows := s.ledger.Rows()
	for _, row := range rows {
		if err := s.projector.UpsertLog(ctx, row); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func (s *LedgerService) persist(ctx context.Context) string {
	if s.persister == nil {
		return ""
	}
	if err := s.persister.Persist(ctx); err != nil {
		s.logger.Warn("could not save logbook, change kept in memory", "error", err)
		return "change kept in memory only: " + err.Error()
	}
	return ""
}
