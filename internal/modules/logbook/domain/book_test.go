package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerdomain "ascent/internal/modules/ledger/domain"
	"ascent/internal/modules/logbook/domain"
	sessiondomain "ascent/internal/modules/session/domain"
	"ascent/internal/platform/id"
)

func TestSnapshotRoundTripKeepsEverything(t *testing.T) {
	t.Parallel()

	book := domain.NewBook(&id.Sequence{Prefix: "id-"})
	_, err := book.Ledger.UpsertCount("2024-05-06", ledgerdomain.Boulder, "v4", 3)
	require.NoError(t, err)
	start := time.Date(2024, 5, 6, 18, 0, 0, 0, time.UTC)
	_, err = book.Sessions.Start("Gym A", start, sessiondomain.PolicyReject)
	require.NoError(t, err)
	_, err = book.Sessions.End(start.Add(90 * time.Minute))
	require.NoError(t, err)
	_, err = book.Sessions.Start("Gym B", start.Add(24*time.Hour), sessiondomain.PolicyReject)
	require.NoError(t, err)

	snap := book.Snapshot()
	assert.Equal(t, domain.SchemaVersion, snap.SchemaVersion)
	require.Len(t, snap.Logs, 1)
	assert.Equal(t, "V4", snap.Logs[0].Grade)
	require.Len(t, snap.Sessions, 1)
	require.NotNil(t, snap.ActiveSession)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	decoded := domain.Snapshot{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	other := domain.NewBook(&id.Sequence{Prefix: "other-"})
	assert.Zero(t, other.Restore(decoded))
	assert.Equal(t, book.Ledger.Rows(), other.Ledger.Rows())
	assert.Equal(t, "1h 30m", other.Sessions.History()[0].DurationLabel)
	active, ok := other.Sessions.Active()
	require.True(t, ok)
	assert.Equal(t, "Gym B", active.GymName)
	assert.True(t, active.StartedAt.Equal(start.Add(24*time.Hour)))
}

func TestRestoreDropsInvalidRowsAndReset(t *testing.T) {
	t.Parallel()

	book := domain.NewBook(&id.Sequence{Prefix: "id-"})
	skipped := book.Restore(domain.Snapshot{Logs: []ledgerdomain.LogEntry{
		{ID: "a", Date: "2024-05-06", Discipline: ledgerdomain.Boulder, Grade: "V1", Count: 2},
		{ID: "b", Date: "2024-05-06", Discipline: "ice", Grade: "WI4", Count: 1},
		{ID: "c", Date: "2024-05-06", Discipline: ledgerdomain.Rope, Grade: "5.9", Count: 0},
	}})
	assert.Equal(t, 2, skipped)
	assert.Len(t, book.Ledger.Rows(), 1)

	book.Reset()
	snap := book.Snapshot()
	assert.Empty(t, snap.Logs)
	assert.Empty(t, snap.Sessions)
	assert.Nil(t, snap.ActiveSession)
}

func TestEmptySnapshotJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(domain.NewBook(id.UUID{}).Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{"schema_version":1,"logs":[],"sessions":[],"active_session":null}`, string(raw))
}
