package ledger

import (
	"context"
	"time"

	"ledgerbook/internal/core/types"
)

// MovementRow is one entry line joined with its entry header and account
// metadata, as returned by movement queries. Rows feed the balance
// accumulator and the general ledger report.
type MovementRow struct {
	AccountID   int64       `db:"account_id" json:"accountId"`
	AccountCode string      `db:"account_code" json:"accountCode"`
	AccountName string      `db:"account_name" json:"accountName"`
	AccountType AccountType `db:"account_type" json:"accountType"`
	EntryID     int64       `db:"entry_id" json:"entryId"`
	LineID      int64       `db:"line_id" json:"lineId"`
	Date        time.Time   `db:"entry_date" json:"date"`
	Description string      `db:"description" json:"description"`
	Debit       types.Money `db:"debit" json:"debit"`
	Credit      types.Money `db:"credit" json:"credit"`
}

// AccountTotal is a per-account debit/credit aggregation over a window.
type AccountTotal struct {
	AccountID   int64       `db:"account_id" json:"accountId"`
	Code        string      `db:"code" json:"code"`
	Name        string      `db:"name" json:"name"`
	Type        AccountType `db:"type" json:"type"`
	TotalDebit  types.Money `db:"total_debit" json:"totalDebit"`
	TotalCredit types.Money `db:"total_credit" json:"totalCredit"`
}

// AccountRepository defines persistence for the chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByCode(ctx context.Context, code string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// EntryRepository defines persistence and aggregation queries for journal
// entries. Aggregations are explicit group-by-account sums so the balance
// computations stay store-agnostic.
type EntryRepository interface {
	Create(ctx context.Context, entry *JournalEntry) error
	GetByID(ctx context.Context, id int64) (*JournalEntry, error)
	ListByPeriod(ctx context.Context, periodID int64) ([]JournalEntry, error)
	Update(ctx context.Context, entry *JournalEntry) error
	Delete(ctx context.Context, id int64) error

	// ListMovements returns all lines with entry dates inside [from, to],
	// joined with account metadata, ordered by account code, then entry
	// date, entry ID, line ID.
	ListMovements(ctx context.Context, from, to time.Time) ([]MovementRow, error)

	// AggregateInWindow sums debits and credits per account over entries
	// dated inside [from, to].
	AggregateInWindow(ctx context.Context, from, to time.Time) ([]AccountTotal, error)

	// AggregateThrough sums debits and credits per account over all
	// entries dated on or before to (historical-cumulative).
	AggregateThrough(ctx context.Context, to time.Time) ([]AccountTotal, error)
}

// PeriodRepository defines persistence for accounting periods.
type PeriodRepository interface {
	Create(ctx context.Context, period *Period) error
	GetByID(ctx context.Context, id int64) (*Period, error)
	List(ctx context.Context) ([]Period, error)
	Update(ctx context.Context, period *Period) error
	Delete(ctx context.Context, id int64) error
}

// SnapshotRepository defines persistence for AccountPeriodBalance rows.
// Rows are written exclusively by period closing; the (period, account) key
// is the unit of mutation.
type SnapshotRepository interface {
	// ListByPeriod returns the snapshot rows for a period, ordered by
	// account ID.
	ListByPeriod(ctx context.Context, periodID int64) ([]AccountPeriodBalance, error)

	// ClosingByAccount returns account ID → closing balance for a period's
	// snapshot. Missing periods yield an empty map, not an error.
	ClosingByAccount(ctx context.Context, periodID int64) (map[int64]types.Money, error)

	// UpsertBatch writes snapshot rows: rows whose (period, account) key
	// already exists have their four numeric fields overwritten in place,
	// others are inserted. The batch must be applied within the caller's
	// transaction as one unit.
	UpsertBatch(ctx context.Context, rows []AccountPeriodBalance) error
}

// HierarchyRepository defines persistence for hierarchy edges.
type HierarchyRepository interface {
	Create(ctx context.Context, edge *HierarchyEdge) error
	GetByID(ctx context.Context, id int64) (*HierarchyEdge, error)
	List(ctx context.Context) ([]HierarchyEdge, error)
	Update(ctx context.Context, edge *HierarchyEdge) error
	Delete(ctx context.Context, id int64) error

	// ExistsByChildCode checks for another edge with the same child code
	// (excluding the given edge ID; pass 0 for creates).
	ExistsByChildCode(ctx context.Context, childCode string, excludeID int64) (bool, error)
}
