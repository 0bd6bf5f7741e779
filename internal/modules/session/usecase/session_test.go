package usecase_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionout "ascent/internal/modules/session/adapter/out"
	"ascent/internal/modules/session/domain"
	sessiondto "ascent/internal/modules/session/dto"
	sessionin "ascent/internal/modules/session/port/in"
	sessionport "ascent/internal/modules/session/port/out"
	"ascent/internal/modules/session/service"
	"ascent/internal/modules/session/usecase"
	apperrors "ascent/internal/platform/errors"
	"ascent/internal/platform/id"
	"ascent/internal/platform/logging"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakePersister struct {
	calls int
	err   error
}

func (f *fakePersister) Persist(context.Context) error {
	f.calls++
	return f.err
}

type failingJournal struct{}

func (failingJournal) Record(context.Context, domain.Entry) (string, error) {
	return "", errors.New("disk full")
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 2, 25, hour, minute, 0, 0, time.UTC)
}

func newSessions(t *testing.T, policy domain.Policy, p sessionport.Persister, j sessionport.Journal, times ...time.Time) sessionin.Usecase {
	t.Helper()
	svc := service.NewSessionService(
		domain.NewRegistry(&id.Sequence{Prefix: "sess-"}),
		&fakeClock{values: times},
		policy,
		p,
		j,
		logging.Discard(),
	)
	return usecase.NewInteractor(svc)
}

func TestSessionLifecycleWritesJournal(t *testing.T) {
	t.Parallel()

	vault := t.TempDir()
	p := &fakePersister{}
	uc := newSessions(t, domain.PolicyReject, p, sessionout.NewVaultSessionJournal(vault), at(10, 0), at(10, 20), at(11, 5))
	ctx := context.Background()

	start, err := uc.Start(ctx, sessiondto.StartInput{GymName: "Vertical World"})
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), start.StartedAt)
	assert.Empty(t, start.Warning)

	active, err := uc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Vertical World", active.GymName)
	assert.Equal(t, "20m", active.Elapsed)

	end, err := uc.End(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", end.Entry.ID)
	assert.Equal(t, "2026-02-25", end.Entry.Date)
	assert.Equal(t, "1h 05m", end.Entry.DurationLabel)
	assert.Equal(t, 2, p.calls)

	_, err = uc.GetActive(ctx)
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)

	raw, err := os.ReadFile(end.NotePath)
	require.NoError(t, err)
	note := string(raw)
	assert.Contains(t, end.NotePath, "sessions/2026/02/25/100000-vertical-world.md")
	assert.Contains(t, note, "duration_minutes: 65")
	assert.Contains(t, note, "gym: Vertical World")
	assert.Contains(t, note, "# Session at Vertical World")

	history, err := uc.History(ctx, sessiondto.HistoryInput{})
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestEndWithoutActiveSession(t *testing.T) {
	t.Parallel()

	uc := newSessions(t, domain.PolicyReject, nil, nil, at(9, 0))
	_, err := uc.End(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestStartPolicies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reject := newSessions(t, domain.PolicyReject, nil, nil, at(9, 0), at(9, 30))
	_, err := reject.Start(ctx, sessiondto.StartInput{GymName: "A"})
	require.NoError(t, err)
	_, err = reject.Start(ctx, sessiondto.StartInput{GymName: "B"})
	require.ErrorIs(t, err, apperrors.ErrActiveSessionExists)

	finish := newSessions(t, domain.PolicyFinish, nil, nil, at(9, 0), at(9, 50))
	_, err = finish.Start(ctx, sessiondto.StartInput{GymName: "A"})
	require.NoError(t, err)
	out, err := finish.Start(ctx, sessiondto.StartInput{GymName: "B"})
	require.NoError(t, err)
	require.NotNil(t, out.Finished)
	assert.Equal(t, "50m", out.Finished.DurationLabel)
	assert.Equal(t, "B", out.GymName)

	discard := newSessions(t, domain.PolicyDiscard, nil, nil, at(9, 0), at(10, 15))
	_, err = discard.Start(ctx, sessiondto.StartInput{GymName: "A"})
	require.NoError(t, err)
	out, err = discard.Start(ctx, sessiondto.StartInput{GymName: "B"})
	require.NoError(t, err)
	assert.Nil(t, out.Finished)
	assert.Equal(t, "1h 15m", out.DiscardedElapsed)
	history, err := discard.History(ctx, sessiondto.HistoryInput{})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestFailuresOnlyWarn(t *testing.T) {
	t.Parallel()

	p := &fakePersister{err: errors.New("read-only")}
	uc := newSessions(t, domain.PolicyReject, p, failingJournal{}, at(18, 0), at(19, 0))
	ctx := context.Background()

	start, err := uc.Start(ctx, sessiondto.StartInput{GymName: "Cave"})
	require.NoError(t, err)
	assert.Contains(t, start.Warning, "read-only")

	end, err := uc.End(ctx)
	require.NoError(t, err)
	assert.Empty(t, end.NotePath)
	assert.Contains(t, end.Warning, "disk full")
	assert.Contains(t, end.Warning, "read-only")
	assert.Equal(t, "1h 00m", end.Entry.DurationLabel)
}

func TestHistoryNewestFirstWithLimit(t *testing.T) {
	t.Parallel()

	uc := newSessions(t, domain.PolicyReject, nil, nil, at(8, 0), at(9, 0), at(12, 0), at(13, 0), at(17, 0), at(18, 0))
	ctx := context.Background()
	for _, gym := range []string{"A", "B", "C"} {
		_, err := uc.Start(ctx, sessiondto.StartInput{GymName: gym})
		require.NoError(t, err)
		_, err = uc.End(ctx)
		require.NoError(t, err)
	}

	history, err := uc.History(ctx, sessiondto.HistoryInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "C", history[0].GymName)
	assert.Equal(t, "B", history[1].GymName)

	_, err = uc.History(ctx, sessiondto.HistoryInput{Limit: -1})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = uc.Start(ctx, sessiondto.StartInput{GymName: strings.Repeat("x", 81)})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
