package ledger

import (
	"context"
	"time"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/core/types"
)

// Period is a bounded date range over which activity is aggregated and
// optionally closed. PriorPeriodID chains closing balances: when this period
// closes, each account's opening balance is the prior period's closing
// balance for that account (0 when the prior period has no snapshot for it,
// or when no prior period is configured).
type Period struct {
	ID            int64     `db:"id" json:"id"`
	StartDate     time.Time `db:"start_date" json:"startDate"`
	EndDate       time.Time `db:"end_date" json:"endDate"`
	Description   string    `db:"description" json:"description"`
	Closed        bool      `db:"closed" json:"closed"`
	PriorPeriodID *int64    `db:"prior_period_id" json:"priorPeriodId,omitempty"`
	Version       int       `db:"version" json:"version"`
}

// Contains reports whether t falls inside the period's date window
// (inclusive on both ends, by calendar date).
func (p *Period) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// Validate checks period invariants (no store access).
func (p *Period) Validate(ctx context.Context) error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return apperror.NewValidation("start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return apperror.NewValidation("end date must not be before start date").
			WithDetail("start_date", p.StartDate).
			WithDetail("end_date", p.EndDate)
	}
	return nil
}

// AccountPeriodBalance is the durable snapshot written by period closing:
// one row per (period, account) pair that had any movement in the period.
// Closing = Opening + TotalDebit − TotalCredit.
type AccountPeriodBalance struct {
	PeriodID    int64       `db:"period_id" json:"periodId"`
	AccountID   int64       `db:"account_id" json:"accountId"`
	Opening     types.Money `db:"opening_balance" json:"openingBalance"`
	TotalDebit  types.Money `db:"total_debit" json:"totalDebit"`
	TotalCredit types.Money `db:"total_credit" json:"totalCredit"`
	Closing     types.Money `db:"closing_balance" json:"closingBalance"`
}
