package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerbook/internal/core/apperror"
)

func newEntryService(periods *fakePeriods, entries *fakeEntries) *EntryService {
	accounts := fakeAccounts{ids: map[int64]bool{10: true, 40: true}}
	return NewEntryService(entries, accounts, periods, noopTx{})
}

func TestEntryServiceCreate(t *testing.T) {
	ctx := context.Background()
	openPeriod := &Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}

	t.Run("valid entry persisted", func(t *testing.T) {
		entries := newFakeEntries()
		svc := newEntryService(newFakePeriods(openPeriod), entries)

		e := balancedEntry(1, date(2024, 1, 15), "100.00")
		require.NoError(t, svc.Create(ctx, e))
		require.Len(t, entries.created, 1)
		assert.NotZero(t, e.ID)
	})

	t.Run("closed period rejected", func(t *testing.T) {
		closed := &Period{ID: 2, StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 29), Closed: true}
		svc := newEntryService(newFakePeriods(closed), newFakeEntries())

		err := svc.Create(ctx, balancedEntry(2, date(2024, 2, 10), "10"))
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
	})

	t.Run("date outside period window rejected", func(t *testing.T) {
		svc := newEntryService(newFakePeriods(openPeriod), newFakeEntries())

		err := svc.Create(ctx, balancedEntry(1, date(2024, 2, 5), "10"))
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("unknown period rejected", func(t *testing.T) {
		svc := newEntryService(newFakePeriods(openPeriod), newFakeEntries())

		err := svc.Create(ctx, balancedEntry(9, date(2024, 1, 15), "10"))
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("unknown account rejected", func(t *testing.T) {
		svc := newEntryService(newFakePeriods(openPeriod), newFakeEntries())

		e := &JournalEntry{
			Date:     date(2024, 1, 15),
			PeriodID: 1,
			Lines: []EntryLine{
				NewDebitLine(999, dec("10")),
				NewCreditLine(40, dec("10")),
			},
		}
		err := svc.Create(ctx, e)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("unbalanced entry rejected before store access", func(t *testing.T) {
		entries := newFakeEntries()
		svc := newEntryService(newFakePeriods(openPeriod), entries)

		e := &JournalEntry{
			Date:     date(2024, 1, 15),
			PeriodID: 1,
			Lines: []EntryLine{
				NewDebitLine(10, dec("100.00")),
				NewCreditLine(40, dec("90.00")),
			},
		}
		err := svc.Create(ctx, e)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnbalancedEntry, appErr.Code)
		assert.Empty(t, entries.created)
	})
}

func TestEntryServiceUpdate_GuardsOldPeriod(t *testing.T) {
	ctx := context.Background()
	closed := &Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31), Closed: true}
	open := &Period{ID: 2, StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 29)}

	stored := balancedEntry(1, date(2024, 1, 10), "10")
	stored.ID = 5
	entries := newFakeEntries(stored)
	svc := newEntryService(newFakePeriods(closed, open), entries)

	// Moving the entry out of its closed period is rejected even though the
	// target period is open.
	moved := balancedEntry(2, date(2024, 2, 10), "10")
	moved.ID = 5
	err := svc.Update(ctx, moved)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
}

func TestEntryServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("entry in open period deleted", func(t *testing.T) {
		open := &Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}
		stored := balancedEntry(1, date(2024, 1, 10), "10")
		stored.ID = 5
		entries := newFakeEntries(stored)
		svc := newEntryService(newFakePeriods(open), entries)

		require.NoError(t, svc.Delete(ctx, 5))
		assert.Equal(t, []int64{5}, entries.deleted)
	})

	t.Run("entry in closed period kept", func(t *testing.T) {
		closed := &Period{ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31), Closed: true}
		stored := balancedEntry(1, date(2024, 1, 10), "10")
		stored.ID = 5
		entries := newFakeEntries(stored)
		svc := newEntryService(newFakePeriods(closed), entries)

		err := svc.Delete(ctx, 5)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
		assert.Empty(t, entries.deleted)
	})
}
