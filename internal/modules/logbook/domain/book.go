package domain

import (
	ledgerdomain "ascent/internal/modules/ledger/domain"
	sessiondomain "ascent/internal/modules/session/domain"
	"ascent/internal/platform/id"
)

// SchemaVersion of the persisted snapshot.
const SchemaVersion = 1

// StorageKey is the single key the whole logbook is saved under.
const StorageKey = "ascent/logbook"

// BackupKey holds a saved blob that failed to load, kept before the next
// save replaces it.
const BackupKey = StorageKey + ".bak"

// Snapshot is the persisted form of a Book. Logs, sessions and the active
// session travel together so they can never be saved out of step.
type Snapshot struct {
	SchemaVersion int                          `json:"schema_version"`
	Logs          []ledgerdomain.LogEntry      `json:"logs"`
	Sessions      []sessiondomain.Entry        `json:"sessions"`
	ActiveSession *sessiondomain.ActiveSession `json:"active_session"`
}

// Book is the process-wide store: one ledger and one session registry. It
// is built once at startup and handed to every usecase.
type Book struct {
	Ledger   *ledgerdomain.Ledger
	Sessions *sessiondomain.Registry
}

func NewBook(ids id.Generator) *Book {
	return &Book{
		Ledger:   ledgerdomain.NewLedger(ids),
		Sessions: sessiondomain.NewRegistry(ids),
	}
}

func (b *Book) Snapshot() Snapshot {
	snap := Snapshot{
		SchemaVersion: SchemaVersion,
		Logs:          b.Ledger.Rows(),
		Sessions:      b.Sessions.History(),
	}
	if active, ok := b.Sessions.Active(); ok {
		snap.ActiveSession = &active
	}
	return snap
}

// Restore replaces the book contents with snap and returns how many log
// rows were dropped as invalid.
func (b *Book) Restore(snap Snapshot) int {
	skipped := b.Ledger.Restore(snap.Logs)
	b.Sessions.Restore(snap.Sessions, snap.ActiveSession)
	return skipped
}

// Reset empties the book.
func (b *Book) Reset() {
	b.Restore(Snapshot{})
}
