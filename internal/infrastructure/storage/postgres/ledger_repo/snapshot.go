package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerbook/internal/core/types"
	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/infrastructure/storage/postgres"
)

var _ ledger.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implements ledger.SnapshotRepository over the
// account_period_balances table. Rows are written only by period closing.
type SnapshotRepo struct {
	base
}

// NewSnapshotRepo creates a new snapshot repository.
func NewSnapshotRepo(txm *postgres.TxManager) *SnapshotRepo {
	return &SnapshotRepo{base{txm: txm}}
}

func (r *SnapshotRepo) ListByPeriod(ctx context.Context, periodID int64) ([]ledger.AccountPeriodBalance, error) {
	sql, args, err := r.builder().
		Select("period_id", "account_id", "opening_balance", "total_debit", "total_credit", "closing_balance").
		From(snapshotTable).
		Where(squirrel.Eq{"period_id": periodID}).
		OrderBy("account_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []ledger.AccountPeriodBalance
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list snapshot rows: %w", err)
	}
	return rows, nil
}

func (r *SnapshotRepo) ClosingByAccount(ctx context.Context, periodID int64) (map[int64]types.Money, error) {
	sql, args, err := r.builder().
		Select("account_id", "closing_balance").
		From(snapshotTable).
		Where(squirrel.Eq{"period_id": periodID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []struct {
		AccountID      int64       `db:"account_id"`
		ClosingBalance types.Money `db:"closing_balance"`
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select closing balances: %w", err)
	}

	out := make(map[int64]types.Money, len(rows))
	for _, row := range rows {
		out[row.AccountID] = row.ClosingBalance
	}
	return out, nil
}

// UpsertBatch writes snapshot rows keyed by (period, account): existing rows
// have their numeric fields overwritten, new rows are inserted. The caller's
// transaction makes the batch atomic.
func (r *SnapshotRepo) UpsertBatch(ctx context.Context, rows []ledger.AccountPeriodBalance) error {
	if len(rows) == 0 {
		return nil
	}

	q := r.builder().
		Insert(snapshotTable).
		Columns("period_id", "account_id", "opening_balance", "total_debit", "total_credit", "closing_balance")
	for _, row := range rows {
		q = q.Values(row.PeriodID, row.AccountID, row.Opening, row.TotalDebit, row.TotalCredit, row.Closing)
	}
	q = q.Suffix(`ON CONFLICT (period_id, account_id) DO UPDATE SET
		opening_balance = EXCLUDED.opening_balance,
		total_debit = EXCLUDED.total_debit,
		total_credit = EXCLUDED.total_credit,
		closing_balance = EXCLUDED.closing_balance`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert snapshot rows: %w", err)
	}
	return nil
}
