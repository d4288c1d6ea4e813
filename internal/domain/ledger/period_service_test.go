package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerbook/internal/core/apperror"
)

func TestPeriodServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("open period does not fire closer", func(t *testing.T) {
		closer := &spyCloser{}
		svc := NewPeriodService(newFakePeriods(), closer, noopTx{})

		p := &Period{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}
		require.NoError(t, svc.Create(ctx, p))
		assert.Empty(t, closer.runs)
	})

	t.Run("created already closed fires closer", func(t *testing.T) {
		closer := &spyCloser{}
		svc := NewPeriodService(newFakePeriods(), closer, noopTx{})

		p := &Period{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31), Closed: true}
		require.NoError(t, svc.Create(ctx, p))
		require.Len(t, closer.runs, 1)
		assert.Equal(t, p.ID, closer.runs[0])
	})

	t.Run("overlapping prior period rejected", func(t *testing.T) {
		prior := &Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 2, 15), Closed: true}
		closer := &spyCloser{}
		svc := NewPeriodService(newFakePeriods(prior), closer, noopTx{})

		priorID := int64(1)
		p := &Period{
			StartDate:     date(2024, 2, 1),
			EndDate:       date(2024, 2, 29),
			PriorPeriodID: &priorID,
		}
		err := svc.Create(ctx, p)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodePeriodOverlap, appErr.Code)
		assert.Empty(t, closer.runs)
	})

	t.Run("unknown prior period rejected", func(t *testing.T) {
		closer := &spyCloser{}
		svc := NewPeriodService(newFakePeriods(), closer, noopTx{})

		priorID := int64(77)
		p := &Period{
			StartDate:     date(2024, 2, 1),
			EndDate:       date(2024, 2, 29),
			PriorPeriodID: &priorID,
		}
		err := svc.Create(ctx, p)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})
}

func TestPeriodServiceUpdate_CloseTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("open to closed fires closer", func(t *testing.T) {
		stored := &Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}
		closer := &spyCloser{}
		svc := NewPeriodService(newFakePeriods(stored), closer, noopTx{})

		upd := *stored
		upd.Closed = true
		require.NoError(t, svc.Update(ctx, &upd))
		assert.Equal(t, []int64{1}, closer.runs)
	})

	t.Run("already closed update does not re-fire", func(t *testing.T) {
		stored := &Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31), Closed: true}
		closer := &spyCloser{}
		svc := NewPeriodService(newFakePeriods(stored), closer, noopTx{})

		upd := *stored
		upd.Description = "renamed"
		require.NoError(t, svc.Update(ctx, &upd))
		assert.Empty(t, closer.runs)
	})

	t.Run("staying open does not fire", func(t *testing.T) {
		stored := &Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}
		closer := &spyCloser{}
		svc := NewPeriodService(newFakePeriods(stored), closer, noopTx{})

		upd := *stored
		upd.Description = "renamed"
		require.NoError(t, svc.Update(ctx, &upd))
		assert.Empty(t, closer.runs)
	})
}

func TestPeriodServiceClose(t *testing.T) {
	ctx := context.Background()

	t.Run("marks open period closed and runs closer", func(t *testing.T) {
		periods := newFakePeriods(&Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)})
		closer := &spyCloser{}
		svc := NewPeriodService(periods, closer, noopTx{})

		require.NoError(t, svc.Close(ctx, 1))
		assert.Equal(t, []int64{1}, closer.runs)

		stored, err := periods.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.True(t, stored.Closed)
	})

	t.Run("re-close of a closed period still runs closer", func(t *testing.T) {
		periods := newFakePeriods(&Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31), Closed: true})
		closer := &spyCloser{}
		svc := NewPeriodService(periods, closer, noopTx{})

		require.NoError(t, svc.Close(ctx, 1))
		require.NoError(t, svc.Close(ctx, 1))
		assert.Equal(t, []int64{1, 1}, closer.runs)
	})

	t.Run("unknown period", func(t *testing.T) {
		svc := NewPeriodService(newFakePeriods(), &spyCloser{}, noopTx{})
		err := svc.Close(ctx, 42)
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}
