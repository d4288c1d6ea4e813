package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/core/types"
)

// JournalEntry is a dated bookkeeping entry owning an ordered collection of
// debit/credit lines. An entry is balanced when its total debit equals its
// total credit; unbalanced entries are rejected at write time.
type JournalEntry struct {
	ID          int64     `db:"id" json:"id"`
	Date        time.Time `db:"entry_date" json:"date"`
	Description string    `db:"description" json:"description"`
	PeriodID    int64     `db:"period_id" json:"periodId"`
	Version     int       `db:"version" json:"version"`

	// Lines are kept in insertion order; line IDs are the tie-breaker for
	// running-balance ordering.
	Lines []EntryLine `db:"-" json:"lines"`
}

// EntryLine is one side of a journal entry: a debit or a credit against an
// account. Exactly one of Debit/Credit must be nonzero.
type EntryLine struct {
	ID        int64       `db:"id" json:"id"`
	EntryID   int64       `db:"entry_id" json:"entryId"`
	AccountID int64       `db:"account_id" json:"accountId"`
	Debit     types.Money `db:"debit" json:"debit"`
	Credit    types.Money `db:"credit" json:"credit"`
}

// TotalDebit sums the debit side of all lines.
func (e *JournalEntry) TotalDebit() types.Money {
	total := types.Zero()
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e *JournalEntry) TotalCredit() types.Money {
	total := types.Zero()
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether total debit equals total credit.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// Validate checks entry invariants: a date, at least one line, non-negative
// amounts, exactly one nonzero side per line, and debit/credit balance.
func (e *JournalEntry) Validate(ctx context.Context) error {
	if e.Date.IsZero() {
		return apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	if len(e.Lines) == 0 {
		return apperror.NewValidation("entry must have at least one line").
			WithDetail("field", "lines")
	}

	for i, l := range e.Lines {
		if l.AccountID == 0 {
			return apperror.NewValidation("line account is required").
				WithDetail("line", i)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperror.NewValidation("line amounts must not be negative").
				WithDetail("line", i)
		}
		hasDebit := !l.Debit.IsZero()
		hasCredit := !l.Credit.IsZero()
		if hasDebit == hasCredit {
			return apperror.NewValidation("line must have exactly one of debit or credit").
				WithDetail("line", i)
		}
	}

	if !e.IsBalanced() {
		return apperror.NewUnbalancedEntry(
			e.TotalDebit().StringFixed(2),
			e.TotalCredit().StringFixed(2),
		)
	}

	return nil
}

// NewDebitLine creates a debit line.
func NewDebitLine(accountID int64, amount types.Money) EntryLine {
	return EntryLine{AccountID: accountID, Debit: amount, Credit: decimal.Zero}
}

// NewCreditLine creates a credit line.
func NewCreditLine(accountID int64, amount types.Money) EntryLine {
	return EntryLine{AccountID: accountID, Debit: decimal.Zero, Credit: amount}
}
