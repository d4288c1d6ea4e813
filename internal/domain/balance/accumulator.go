// Package balance provides pure running-balance and totals computation over
// debit/credit movements. It has no store dependencies; callers feed it
// movement rows and an opening balance.
package balance

import (
	"sort"
	"time"

	"ledgerbook/internal/core/types"
)

// Movement is a single debit/credit line for one account.
type Movement struct {
	Date    time.Time
	EntryID int64
	LineID  int64
	Debit   types.Money
	Credit  types.Money
}

// Net returns debit − credit for the movement.
func (m Movement) Net() types.Money {
	return m.Debit.Sub(m.Credit)
}

// Step is a movement annotated with the balance after applying it.
type Step struct {
	Movement
	Running types.Money
}

// Totals summarizes an account's activity over a window.
type Totals struct {
	Opening     types.Money
	TotalDebit  types.Money
	TotalCredit types.Money
	Closing     types.Money
}

// SortMovements orders movements by date, then entry ID, then line ID,
// all ascending. The ordering is deterministic and stable; running balances
// are only reproducible over movements sorted this way.
func SortMovements(movements []Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		a, b := movements[i], movements[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.EntryID != b.EntryID {
			return a.EntryID < b.EntryID
		}
		return a.LineID < b.LineID
	})
}

// Running folds movements into a running-balance sequence starting from the
// opening balance. Movements are sorted before folding. An empty input yields
// an empty sequence; the opening balance alone is then the closing balance.
func Running(opening types.Money, movements []Movement) []Step {
	SortMovements(movements)

	steps := make([]Step, 0, len(movements))
	running := opening
	for _, m := range movements {
		running = running.Add(m.Net())
		steps = append(steps, Step{Movement: m, Running: running})
	}
	return steps
}

// Sum computes aggregate totals for a movement window:
// total debit, total credit, and closing = opening + total debit − total credit.
func Sum(opening types.Money, movements []Movement) Totals {
	totalDebit := types.Zero()
	totalCredit := types.Zero()
	for _, m := range movements {
		totalDebit = totalDebit.Add(m.Debit)
		totalCredit = totalCredit.Add(m.Credit)
	}
	return Totals{
		Opening:     opening,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Closing:     opening.Add(totalDebit).Sub(totalCredit),
	}
}
