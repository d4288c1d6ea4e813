package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/core/types"
)

// Shared test fixtures for the service tests in this package.

type noopTx struct{}

func (noopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) types.Money {
	return decimal.RequireFromString(s)
}

type fakePeriods struct {
	PeriodRepository
	byID   map[int64]*Period
	nextID int64
}

func newFakePeriods(periods ...*Period) *fakePeriods {
	f := &fakePeriods{byID: map[int64]*Period{}, nextID: 100}
	for _, p := range periods {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePeriods) Create(_ context.Context, p *Period) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePeriods) GetByID(_ context.Context, id int64) (*Period, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("period", id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePeriods) Update(_ context.Context, p *Period) error {
	if _, ok := f.byID[p.ID]; !ok {
		return apperror.NewNotFound("period", p.ID)
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

type fakeAccounts struct {
	AccountRepository
	ids map[int64]bool
}

func (f fakeAccounts) Exists(_ context.Context, id int64) (bool, error) {
	return f.ids[id], nil
}

type fakeEntries struct {
	EntryRepository
	byID    map[int64]*JournalEntry
	created []*JournalEntry
	deleted []int64
}

func newFakeEntries(entries ...*JournalEntry) *fakeEntries {
	f := &fakeEntries{byID: map[int64]*JournalEntry{}}
	for _, e := range entries {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEntries) Create(_ context.Context, e *JournalEntry) error {
	e.ID = int64(len(f.byID) + 1)
	f.byID[e.ID] = e
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEntries) GetByID(_ context.Context, id int64) (*JournalEntry, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("journal entry", id)
	}
	return e, nil
}

func (f *fakeEntries) Update(_ context.Context, e *JournalEntry) error {
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEntries) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// spyCloser records close invocations.
type spyCloser struct {
	runs []int64
}

func (s *spyCloser) Run(_ context.Context, periodID int64) error {
	s.runs = append(s.runs, periodID)
	return nil
}

func balancedEntry(periodID int64, day time.Time, amount string) *JournalEntry {
	return &JournalEntry{
		Date:        day,
		Description: "test entry",
		PeriodID:    periodID,
		Lines: []EntryLine{
			NewDebitLine(10, dec(amount)),
			NewCreditLine(40, dec(amount)),
		},
	}
}
