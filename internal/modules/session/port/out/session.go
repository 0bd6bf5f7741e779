package out

import (
	"context"

	"ascent/internal/modules/session/domain"
)

// Persister saves the whole logbook after a session change.
type Persister interface {
	Persist(ctx context.Context) error
}

// Journal keeps a human-readable record of a finished session and returns
// its location.
type Journal interface {
	Record(ctx context.Context, entry domain.Entry) (string, error)
}
