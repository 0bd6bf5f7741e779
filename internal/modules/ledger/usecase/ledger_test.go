package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascent/internal/modules/ledger/domain"
	"ascent/internal/modules/ledger/dto"
	ledgerin "ascent/internal/modules/ledger/port/in"
	"ascent/internal/modules/ledger/service"
	"ascent/internal/modules/ledger/usecase"
	apperrors "ascent/internal/platform/errors"
	"ascent/internal/platform/id"
	"ascent/internal/platform/logging"
)

type fakePersister struct {
	calls int
	err   error
}

func (f *fakePersister) Persist(context.Context) error {
	f.calls++
	return f.err
}

type fakeProjector struct {
	rows   []domain.LogEntry
	resets int
}

func (f *fakeProjector) Reset(context.Context) error {
	f.resets++
	f.rows = nil
	return nil
}

func (f *fakeProjector) UpsertLog(_ context.Context, entry domain.LogEntry) error {
	f.rows = append(f.rows, entry)
	return nil
}

func newInteractor(p *fakePersister, proj *fakeProjector) (*domain.Ledger, ledgerin.Usecase) {
	ledger := domain.NewLedger(&id.Sequence{Prefix: "log-"})
	svc := service.NewLedgerService(ledger, p, proj, logging.Discard())
	return ledger, usecase.NewInteractor(svc)
}

func TestLogPersistsOnlyWhenSomethingChanged(t *testing.T) {
	t.Parallel()
	p := &fakePersister{}
	_, uc := newInteractor(p, &fakeProjector{})
	ctx := context.Background()

	out, err := uc.Log(ctx, dto.LogInput{Date: "2026-10-15", Discipline: "bouldering", Grade: "v3", Delta: 2})
	require.NoError(t, err)
	assert.Equal(t, "V3", out.Entry.Grade)
	assert.Equal(t, "boulder", out.Entry.Discipline)
	assert.Equal(t, 2, out.Entry.Count)
	assert.Equal(t, 1, p.calls)

	out, err = uc.Log(ctx, dto.LogInput{Date: "2026-10-15", Discipline: "boulder", Grade: "V9", Delta: -1})
	require.NoError(t, err)
	assert.False(t, out.Deleted)
	assert.Equal(t, 1, p.calls, "no-op must not persist")

	out, err = uc.Log(ctx, dto.LogInput{Date: "2026-10-15", Discipline: "boulder", Grade: "V3", Delta: -5})
	require.NoError(t, err)
	assert.True(t, out.Deleted)
	assert.Equal(t, 2, p.calls)

	total, err := uc.DayTotal(ctx, dto.DayInput{Date: "2026-10-15", Discipline: "boulder"})
	require.NoError(t, err)
	assert.Equal(t, 0, total.Total)
}

func TestLogKeepsMutationWhenPersistenceFails(t *testing.T) {
	t.Parallel()
	p := &fakePersister{err: errors.New("disk full")}
	ledger, uc := newInteractor(p, &fakeProjector{})

	out, err := uc.Log(context.Background(), dto.LogInput{Date: "2026-10-15", Discipline: "rope", Grade: "5.10a", Delta: 1})
	require.NoError(t, err)
	assert.Contains(t, out.Warning, "disk full")
	assert.Equal(t, 1, ledger.CountByDateDiscipline("2026-10-15", domain.Rope))
}

func TestInputValidation(t *testing.T) {
	t.Parallel()
	_, uc := newInteractor(&fakePersister{}, &fakeProjector{})
	ctx := context.Background()

	_, err := uc.Log(ctx, dto.LogInput{Date: "15.10.2026", Discipline: "boulder", Grade: "V1", Delta: 1})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Log(ctx, dto.LogInput{Date: "2026-10-15", Discipline: "boulder", Grade: "", Delta: 1})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Log(ctx, dto.LogInput{Date: "2026-10-15", Discipline: "ice", Grade: "WI3", Delta: 1})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Log(ctx, dto.LogInput{Date: "2026-10-15", Discipline: "boulder", Grade: "V1", Delta: 5000})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Remove(ctx, dto.RemoveInput{})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.ResetDay(ctx, dto.ResetDayInput{Date: "2026-10-15", Discipline: "ice"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListDayResetAndRemove(t *testing.T) {
	t.Parallel()
	p := &fakePersister{}
	_, uc := newInteractor(p, &fakeProjector{})
	ctx := context.Background()
	for _, in := range []dto.LogInput{
		{Date: "2026-10-15", Discipline: "rope", Grade: "5.11a", Delta: 1},
		{Date: "2026-10-15", Discipline: "boulder", Grade: "V7", Delta: 5},
		{Date: "2026-10-15", Discipline: "boulder", Grade: "V0", Delta: 3},
		{Date: "2026-10-16", Discipline: "boulder", Grade: "V4", Delta: 2},
	} {
		_, err := uc.Log(ctx, in)
		require.NoError(t, err)
	}

	rows, err := uc.ListDay(ctx, dto.DayInput{Date: "2026-10-15"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"V0", "V7", "5.11a"}, []string{rows[0].Grade, rows[1].Grade, rows[2].Grade})

	total, err := uc.DayTotal(ctx, dto.DayInput{Date: "2026-10-15"})
	require.NoError(t, err)
	assert.Equal(t, 9, total.Total)

	removed, err := uc.Remove(ctx, dto.RemoveInput{ID: rows[0].ID})
	require.NoError(t, err)
	assert.True(t, removed.Removed)
	removed, err = uc.Remove(ctx, dto.RemoveInput{ID: rows[0].ID})
	require.NoError(t, err)
	assert.False(t, removed.Removed)

	reset, err := uc.ResetDay(ctx, dto.ResetDayInput{Date: "2026-10-15", Discipline: "boulder"})
	require.NoError(t, err)
	assert.Equal(t, 1, reset.Removed)

	all, err := uc.Rows(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReindexProjectsEveryRow(t *testing.T) {
	t.Parallel()
	proj := &fakeProjector{rows: []domain.LogEntry{{ID: "stale"}}}
	_, uc := newInteractor(&fakePersister{}, proj)
	ctx := context.Background()
	_, err := uc.Log(ctx, dto.LogInput{Date: "2026-10-15", Discipline: "boulder", Grade: "V2", Delta: 1})
	require.NoError(t, err)
	_, err = uc.Log(ctx, dto.LogInput{Date: "2026-10-15", Discipline: "rope", Grade: "5.9", Delta: 1})
	require.NoError(t, err)

	out, err := uc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Rows)
	assert.Equal(t, 1, proj.resets)
	assert.Len(t, proj.rows, 2)
}
