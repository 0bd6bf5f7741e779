package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"ascent/internal/modules/logbook/domain"
	logbookout "ascent/internal/modules/logbook/port/out"
	apperrors "ascent/internal/platform/errors"
)

// PersistenceService saves and loads the whole Book as one blob. It
// implements the Persister ports of the ledger and session modules.
type PersistenceService struct {
	book   *domain.Book
	store  logbookout.KVStore
	logger *slog.Logger

	mu sync.Mutex
}

func NewPersistenceService(book *domain.Book, store logbookout.KVStore, logger *slog.Logger) *PersistenceService {
	return &PersistenceService{book: book, store: store, logger: logger}
}

// Save writes snap under the logbook key.
func (s *PersistenceService) Save(ctx context.Context, snap domain.Snapshot) error {
	if snap.SchemaVersion == 0 {
		snap.SchemaVersion = domain.SchemaVersion
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: encode logbook: %v", apperrors.ErrPersistence, err)
	}
	if err := s.store.Set(ctx, domain.StorageKey, raw); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// Load reads the saved snapshot. A key that was never written is an empty
// snapshot, not an error.
func (s *PersistenceService) Load(ctx context.Context) (domain.Snapshot, error) {
	raw, err := s.store.Get(ctx, domain.StorageKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Snapshot{SchemaVersion: domain.SchemaVersion}, nil
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	snap := domain.Snapshot{}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: decode logbook: %v", apperrors.ErrPersistence, err)
	}
	if snap.SchemaVersion > domain.SchemaVersion {
		return domain.Snapshot{}, fmt.Errorf("%w: logbook schema %d is newer than %d", apperrors.ErrPersistence, snap.SchemaVersion, domain.SchemaVersion)
	}
	return snap, nil
}

// Persist snapshots the book and saves it. Calls are serialized so a slow
// save can never overwrite a newer one.
func (s *PersistenceService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Save(ctx, s.book.Snapshot())
}

// Hydrate fills the book from storage. On failure the book is left empty
// and usable, and the error is returned for the caller to report.
func (s *PersistenceService) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Load(ctx)
	if err != nil {
		s.book.Reset()
		s.logger.Warn("could not load saved logs, starting empty", "error", err)
		s.backup(ctx)
		return err
	}
	if skipped := s.book.Restore(snap); skipped > 0 {
		s.logger.Warn("dropped invalid log rows", "count", skipped)
	}
	s.logger.Debug("logbook loaded", "logs", len(snap.Logs), "sessions", len(snap.Sessions), "active", snap.ActiveSession != nil)
	return nil
}

// backup copies the stored blob to BackupKey so the next save does not
// replace the only copy of data that failed to load.
func (s *PersistenceService) backup(ctx context.Context) {
	raw, err := s.store.Get(ctx, domain.StorageKey)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, domain.BackupKey, raw); err != nil {
		s.logger.Warn("could not back up saved logs", "key", domain.BackupKey, "error", err)
		return
	}
	s.logger.Warn("unreadable saved logs kept aside", "key", domain.BackupKey)
}
