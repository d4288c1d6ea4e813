// Package closing implements period closing: computing and durably
// snapshotting per-account opening/closing balances, chained from the prior
// period's snapshot.
package closing

import (
	"context"
	"fmt"
	"sort"

	"ledgerbook/internal/core/tx"
	"ledgerbook/internal/core/types"
	"ledgerbook/internal/domain/ledger"
	"ledgerbook/pkg/logger"
)

// Closer orchestrates the closing of a period.
type Closer struct {
	periods   ledger.PeriodRepository
	entries   ledger.EntryRepository
	snapshots ledger.SnapshotRepository
	txm       tx.Manager
}

// NewCloser creates a new period closer.
func NewCloser(
	periods ledger.PeriodRepository,
	entries ledger.EntryRepository,
	snapshots ledger.SnapshotRepository,
	txm tx.Manager,
) *Closer {
	return &Closer{
		periods:   periods,
		entries:   entries,
		snapshots: snapshots,
		txm:       txm,
	}
}

// Run closes the given period:
//
//  1. Load the prior period's closing balances keyed by account; a missing
//     prior reference (or missing snapshot rows) means opening balance 0.
//  2. Aggregate the period's movements per account (debit and credit sums).
//  3. For every account with movement: closing = opening + debit − credit;
//     upsert one AccountPeriodBalance row keyed by (period, account).
//
// The whole upsert batch commits as one transaction; a partial failure
// leaves no mixed old/new snapshot rows. Run is idempotent: reapplying it
// with unchanged journal data stores identical rows.
func (c *Closer) Run(ctx context.Context, periodID int64) error {
	period, err := c.periods.GetByID(ctx, periodID)
	if err != nil {
		return err
	}

	return c.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		openings, err := c.priorClosings(ctx, period)
		if err != nil {
			return err
		}

		totals, err := c.entries.AggregateInWindow(ctx, period.StartDate, period.EndDate)
		if err != nil {
			return fmt.Errorf("aggregate period movements: %w", err)
		}

		rows := make([]ledger.AccountPeriodBalance, 0, len(totals))
		for _, t := range totals {
			opening, ok := openings[t.AccountID]
			if !ok {
				opening = types.Zero()
			}
			rows = append(rows, ledger.AccountPeriodBalance{
				PeriodID:    period.ID,
				AccountID:   t.AccountID,
				Opening:     opening,
				TotalDebit:  t.TotalDebit,
				TotalCredit: t.TotalCredit,
				Closing:     opening.Add(t.TotalDebit).Sub(t.TotalCredit),
			})
		}

		// Deterministic write order.
		sort.Slice(rows, func(i, j int) bool { return rows[i].AccountID < rows[j].AccountID })

		if err := c.snapshots.UpsertBatch(ctx, rows); err != nil {
			return fmt.Errorf("upsert snapshot rows: %w", err)
		}

		logger.Info(ctx, "period snapshot written",
			"period_id", period.ID,
			"accounts", len(rows),
		)
		return nil
	})
}

// priorClosings returns account → closing balance from the prior period's
// snapshot. No prior period configured means every opening is 0.
func (c *Closer) priorClosings(ctx context.Context, period *ledger.Period) (map[int64]types.Money, error) {
	if period.PriorPeriodID == nil {
		return map[int64]types.Money{}, nil
	}
	openings, err := c.snapshots.ClosingByAccount(ctx, *period.PriorPeriodID)
	if err != nil {
		return nil, fmt.Errorf("load prior period closings: %w", err)
	}
	return openings, nil
}
