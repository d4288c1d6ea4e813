package closing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/core/types"
	"ledgerbook/internal/domain/ledger"
)

type noopTx struct{}

func (noopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPeriods struct {
	ledger.PeriodRepository
	byID map[int64]*ledger.Period
}

func (s stubPeriods) GetByID(_ context.Context, id int64) (*ledger.Period, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("period", id)
	}
	return p, nil
}

type stubEntries struct {
	ledger.EntryRepository
	totals []ledger.AccountTotal
	// window observed by the last AggregateInWindow call
	from, to time.Time
}

func (s *stubEntries) AggregateInWindow(_ context.Context, from, to time.Time) ([]ledger.AccountTotal, error) {
	s.from, s.to = from, to
	return s.totals, nil
}

type memSnapshots struct {
	ledger.SnapshotRepository
	rows map[[2]int64]ledger.AccountPeriodBalance
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{rows: map[[2]int64]ledger.AccountPeriodBalance{}}
}

func (m *memSnapshots) ClosingByAccount(_ context.Context, periodID int64) (map[int64]types.Money, error) {
	out := map[int64]types.Money{}
	for k, r := range m.rows {
		if k[0] == periodID {
			out[r.AccountID] = r.Closing
		}
	}
	return out, nil
}

func (m *memSnapshots) UpsertBatch(_ context.Context, rows []ledger.AccountPeriodBalance) error {
	for _, r := range rows {
		m.rows[[2]int64{r.PeriodID, r.AccountID}] = r
	}
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) types.Money {
	return decimal.RequireFromString(s)
}

func total(accountID int64, debit, credit string) ledger.AccountTotal {
	return ledger.AccountTotal{AccountID: accountID, TotalDebit: dec(debit), TotalCredit: dec(credit)}
}

func TestCloserRun_NoPriorPeriod(t *testing.T) {
	periods := stubPeriods{byID: map[int64]*ledger.Period{
		1: {ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)},
	}}
	entries := &stubEntries{totals: []ledger.AccountTotal{
		total(10, "100.00", "0"),
		total(20, "0", "100.00"),
	}}
	snapshots := newMemSnapshots()

	closer := NewCloser(periods, entries, snapshots, noopTx{})
	require.NoError(t, closer.Run(context.Background(), 1))

	cash := snapshots.rows[[2]int64{1, 10}]
	assert.True(t, cash.Opening.IsZero())
	assert.True(t, cash.Closing.Equal(dec("100.00")), "closing = 0 + 100 - 0, got %s", cash.Closing)

	revenue := snapshots.rows[[2]int64{1, 20}]
	assert.True(t, revenue.Closing.Equal(dec("-100.00")))

	// The aggregation window is exactly the period's date range.
	assert.Equal(t, date(2024, 1, 1), entries.from)
	assert.Equal(t, date(2024, 1, 31), entries.to)
}

func TestCloserRun_ChainsPriorClosings(t *testing.T) {
	prior := int64(1)
	periods := stubPeriods{byID: map[int64]*ledger.Period{
		1: {ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31), Closed: true},
		2: {ID: 2, StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 29), PriorPeriodID: &prior},
	}}
	entries := &stubEntries{totals: []ledger.AccountTotal{
		total(10, "50.00", "20.00"),
		total(30, "5.00", "0"), // no prior snapshot row for this account
	}}
	snapshots := newMemSnapshots()
	snapshots.rows[[2]int64{1, 10}] = ledger.AccountPeriodBalance{
		PeriodID: 1, AccountID: 10, Closing: dec("100.00"),
	}

	closer := NewCloser(periods, entries, snapshots, noopTx{})
	require.NoError(t, closer.Run(context.Background(), 2))

	chained := snapshots.rows[[2]int64{2, 10}]
	assert.True(t, chained.Opening.Equal(dec("100.00")))
	assert.True(t, chained.Closing.Equal(dec("130.00")), "100 + 50 - 20, got %s", chained.Closing)

	fresh := snapshots.rows[[2]int64{2, 30}]
	assert.True(t, fresh.Opening.IsZero())
	assert.True(t, fresh.Closing.Equal(dec("5.00")))
}

func TestCloserRun_Idempotent(t *testing.T) {
	periods := stubPeriods{byID: map[int64]*ledger.Period{
		1: {ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)},
	}}
	entries := &stubEntries{totals: []ledger.AccountTotal{
		total(10, "42.00", "0"),
	}}
	snapshots := newMemSnapshots()

	closer := NewCloser(periods, entries, snapshots, noopTx{})
	require.NoError(t, closer.Run(context.Background(), 1))
	first := snapshots.rows[[2]int64{1, 10}]

	require.NoError(t, closer.Run(context.Background(), 1))
	second := snapshots.rows[[2]int64{1, 10}]

	assert.Equal(t, first, second)
	assert.Len(t, snapshots.rows, 1)
}

func TestCloserRun_PeriodNotFound(t *testing.T) {
	closer := NewCloser(stubPeriods{byID: map[int64]*ledger.Period{}}, &stubEntries{}, newMemSnapshots(), noopTx{})

	err := closer.Run(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCloserRun_NoMovement(t *testing.T) {
	periods := stubPeriods{byID: map[int64]*ledger.Period{
		1: {ID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)},
	}}
	closer := NewCloser(periods, &stubEntries{}, newMemSnapshots(), noopTx{})

	require.NoError(t, closer.Run(context.Background(), 1))
}
