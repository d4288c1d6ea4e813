package balance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSortMovements_Deterministic(t *testing.T) {
	movements := []Movement{
		{Date: date(2024, 1, 20), EntryID: 3, LineID: 1},
		{Date: date(2024, 1, 10), EntryID: 2, LineID: 2},
		{Date: date(2024, 1, 10), EntryID: 2, LineID: 1},
		{Date: date(2024, 1, 10), EntryID: 1, LineID: 9},
	}

	SortMovements(movements)

	require.Len(t, movements, 4)
	assert.Equal(t, int64(1), movements[0].EntryID)
	assert.Equal(t, int64(2), movements[1].EntryID)
	assert.Equal(t, int64(1), movements[1].LineID)
	assert.Equal(t, int64(2), movements[2].LineID)
	assert.Equal(t, int64(3), movements[3].EntryID)
}

func TestRunning_FoldProperty(t *testing.T) {
	opening := dec("250.00")
	movements := []Movement{
		{Date: date(2024, 1, 5), EntryID: 1, LineID: 1, Debit: dec("100.00")},
		{Date: date(2024, 1, 8), EntryID: 2, LineID: 3, Credit: dec("40.00")},
		{Date: date(2024, 1, 8), EntryID: 2, LineID: 4, Debit: dec("15.50")},
	}

	steps := Running(opening, movements)

	require.Len(t, steps, 3)
	assert.True(t, steps[0].Running.Equal(dec("350.00")))
	assert.True(t, steps[1].Running.Equal(dec("310.00")))
	assert.True(t, steps[2].Running.Equal(dec("325.50")))

	// Last running balance equals opening + Σ(debit − credit).
	net := decimal.Zero
	for _, m := range movements {
		net = net.Add(m.Net())
	}
	assert.True(t, steps[len(steps)-1].Running.Equal(opening.Add(net)))

	// And it equals the reported closing balance.
	totals := Sum(opening, movements)
	assert.True(t, totals.Closing.Equal(steps[len(steps)-1].Running))
}

func TestRunning_SortsBeforeFolding(t *testing.T) {
	opening := decimal.Zero
	movements := []Movement{
		{Date: date(2024, 1, 9), EntryID: 5, LineID: 1, Credit: dec("30")},
		{Date: date(2024, 1, 2), EntryID: 1, LineID: 1, Debit: dec("100")},
	}

	steps := Running(opening, movements)

	require.Len(t, steps, 2)
	assert.Equal(t, int64(1), steps[0].EntryID)
	assert.True(t, steps[0].Running.Equal(dec("100")))
	assert.True(t, steps[1].Running.Equal(dec("70")))
}

func TestSum_Totals(t *testing.T) {
	totals := Sum(dec("10"), []Movement{
		{Debit: dec("100.10")},
		{Credit: dec("60.10")},
		{Debit: dec("0.90"), Credit: dec("0.90")},
	})

	assert.True(t, totals.Opening.Equal(dec("10")))
	assert.True(t, totals.TotalDebit.Equal(dec("101.00")))
	assert.True(t, totals.TotalCredit.Equal(dec("61.00")))
	assert.True(t, totals.Closing.Equal(dec("50.00")))
}

func TestSum_EmptyWindow(t *testing.T) {
	totals := Sum(dec("75.25"), nil)

	assert.True(t, totals.TotalDebit.IsZero())
	assert.True(t, totals.TotalCredit.IsZero())
	assert.True(t, totals.Closing.Equal(totals.Opening))

	steps := Running(dec("75.25"), nil)
	assert.Empty(t, steps)
}

func TestSum_ExactDecimalArithmetic(t *testing.T) {
	// 0.1 + 0.2 style sums must not drift.
	movements := make([]Movement, 0, 10)
	for i := 0; i < 10; i++ {
		movements = append(movements, Movement{Debit: dec("0.10")})
	}

	totals := Sum(decimal.Zero, movements)
	assert.True(t, totals.Closing.Equal(dec("1.00")))
}
