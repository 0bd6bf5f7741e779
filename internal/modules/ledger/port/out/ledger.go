package out

import (
	"context"

	"ascent/internal/modules/ledger/domain"
)

// Persister writes the whole logbook after a mutation.
type Persister interface {
	Persist(ctx context.Context) error
}

// LogIndexProjector mirrors ledger rows into a queryable index. The index
// is never read back.
type LogIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertLog(ctx context.Context, entry domain.LogEntry) error
}
