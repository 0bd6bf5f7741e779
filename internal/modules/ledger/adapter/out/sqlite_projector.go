package out

import (
	"context"
	"database/sql"
	"fmt"

	"ascent/internal/modules/ledger/domain"
	ledgerout "ascent/internal/modules/ledger/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteLogProjector struct {
	db *sql.DB
}

// NewSQLiteLogProjector shares db with the snapshot store; both live in the
// vault's ascent.db.
func NewSQLiteLogProjector(db *sql.DB) (ledgerout.LogIndexProjector, error) {
	projector := &SQLiteLogProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteLogProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS logs (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL,
  discipline TEXT NOT NULL,
  grade TEXT NOT NULL,
  count INTEGER NOT NULL,
  UNIQUE (date, discipline, grade)
);
CREATE INDEX IF NOT EXISTS logs_by_date ON logs (date, discipline);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create logs table: %w", err)
	}
	return nil
}

func (s *SQLiteLogProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM logs`); err != nil {
		return fmt.Errorf("reset logs: %w", err)
	}
	return nil
}

func (s *SQLiteLogProjector) UpsertLog(ctx context.Context, entry domain.LogEntry) error {
	const stmt = `
INSERT INTO logs (id, date, discipline, grade, count)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  date=excluded.date,
  discipline=excluded.discipline,
  grade=excluded.grade,
  count=excluded.count;
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		string(entry.Date),
		string(entry.Discipline),
		entry.Grade,
		entry.Count,
	)
	if err != nil {
		return fmt.Errorf("upsert log: %w", err)
	}
	return nil
}
