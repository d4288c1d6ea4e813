package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerbook/internal/core/apperror"
)

func TestJournalEntryValidate(t *testing.T) {
	ctx := context.Background()
	day := date(2024, 1, 15)

	t.Run("balanced entry passes", func(t *testing.T) {
		e := balancedEntry(1, day, "100.00")
		require.NoError(t, e.Validate(ctx))
		assert.True(t, e.IsBalanced())
	})

	t.Run("unbalanced entry rejected", func(t *testing.T) {
		e := &JournalEntry{
			Date:     day,
			PeriodID: 1,
			Lines: []EntryLine{
				NewDebitLine(10, dec("100.00")),
				NewCreditLine(40, dec("99.99")),
			},
		}
		err := e.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnbalancedEntry, appErr.Code)
		assert.Equal(t, "100.00", appErr.Details["total_debit"])
		assert.Equal(t, "99.99", appErr.Details["total_credit"])
	})

	t.Run("missing date rejected", func(t *testing.T) {
		e := balancedEntry(1, day, "10")
		e.Date = time.Time{}
		require.Error(t, e.Validate(ctx))
	})

	t.Run("no lines rejected", func(t *testing.T) {
		e := &JournalEntry{Date: day, PeriodID: 1}
		require.Error(t, e.Validate(ctx))
	})

	t.Run("line with both sides set rejected", func(t *testing.T) {
		e := &JournalEntry{
			Date:     day,
			PeriodID: 1,
			Lines: []EntryLine{
				{AccountID: 10, Debit: dec("5"), Credit: dec("5")},
			},
		}
		require.Error(t, e.Validate(ctx))
	})

	t.Run("line with neither side set rejected", func(t *testing.T) {
		e := &JournalEntry{
			Date:     day,
			PeriodID: 1,
			Lines: []EntryLine{
				{AccountID: 10, Debit: dec("0"), Credit: dec("0")},
			},
		}
		require.Error(t, e.Validate(ctx))
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		e := &JournalEntry{
			Date:     day,
			PeriodID: 1,
			Lines: []EntryLine{
				{AccountID: 10, Debit: dec("-1"), Credit: dec("0")},
			},
		}
		require.Error(t, e.Validate(ctx))
	})

	t.Run("missing account rejected", func(t *testing.T) {
		e := &JournalEntry{
			Date:     day,
			PeriodID: 1,
			Lines:    []EntryLine{NewDebitLine(0, dec("5"))},
		}
		require.Error(t, e.Validate(ctx))
	})
}

func TestJournalEntryTotals(t *testing.T) {
	e := &JournalEntry{
		Date:     date(2024, 1, 15),
		PeriodID: 1,
		Lines: []EntryLine{
			NewDebitLine(10, dec("60.00")),
			NewDebitLine(11, dec("40.00")),
			NewCreditLine(40, dec("100.00")),
		},
	}

	assert.True(t, e.TotalDebit().Equal(dec("100.00")))
	assert.True(t, e.TotalCredit().Equal(dec("100.00")))
	assert.True(t, e.IsBalanced())
}
