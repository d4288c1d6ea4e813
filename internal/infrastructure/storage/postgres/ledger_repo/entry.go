package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/infrastructure/storage/postgres"
)

var _ ledger.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implements ledger.EntryRepository. Lines are owned by their
// entry: updates replace the full line set, deletes cascade.
type EntryRepo struct {
	base
}

// NewEntryRepo creates a new journal entry repository.
func NewEntryRepo(txm *postgres.TxManager) *EntryRepo {
	return &EntryRepo{base{txm: txm}}
}

func (r *EntryRepo) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	sql, args, err := r.builder().
		Insert(entryTable).
		Columns("entry_date", "description", "period_id", "version").
		Values(entry.Date, entry.Description, entry.PeriodID, 1).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &entry.ID, sql, args...); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	entry.Version = 1

	return r.insertLines(ctx, entry)
}

func (r *EntryRepo) insertLines(ctx context.Context, entry *ledger.JournalEntry) error {
	for i := range entry.Lines {
		line := &entry.Lines[i]
		line.EntryID = entry.ID

		sql, args, err := r.builder().
			Insert(lineTable).
			Columns("entry_id", "account_id", "debit", "credit").
			Values(line.EntryID, line.AccountID, line.Debit, line.Credit).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build line insert: %w", err)
		}
		if err := pgxscan.Get(ctx, r.querier(ctx), &line.ID, sql, args...); err != nil {
			return fmt.Errorf("insert entry line: %w", err)
		}
	}
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, id int64) (*ledger.JournalEntry, error) {
	sql, args, err := r.builder().
		Select("id", "entry_date", "description", "period_id", "version").
		From(entryTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var entry ledger.JournalEntry
	if err := pgxscan.Get(ctx, r.querier(ctx), &entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("journal entry", id)
		}
		return nil, fmt.Errorf("select entry: %w", err)
	}

	lines, err := r.linesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[id]
	if entry.Lines == nil {
		entry.Lines = []ledger.EntryLine{}
	}
	return &entry, nil
}

func (r *EntryRepo) ListByPeriod(ctx context.Context, periodID int64) ([]ledger.JournalEntry, error) {
	sql, args, err := r.builder().
		Select("id", "entry_date", "description", "period_id", "version").
		From(entryTable).
		Where(squirrel.Eq{"period_id": periodID}).
		OrderBy("entry_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var entries []ledger.JournalEntry
	if err := pgxscan.Select(ctx, r.querier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].ID]
		if entries[i].Lines == nil {
			entries[i].Lines = []ledger.EntryLine{}
		}
	}
	return entries, nil
}

// linesFor loads lines for a set of entries, keyed by entry ID, preserving
// insertion order within each entry.
func (r *EntryRepo) linesFor(ctx context.Context, entryIDs []int64) (map[int64][]ledger.EntryLine, error) {
	sql, args, err := r.builder().
		Select("id", "entry_id", "account_id", "debit", "credit").
		From(lineTable).
		Where(squirrel.Eq{"entry_id": entryIDs}).
		OrderBy("entry_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build line select: %w", err)
	}

	var lines []ledger.EntryLine
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select entry lines: %w", err)
	}

	byEntry := make(map[int64][]ledger.EntryLine, len(entryIDs))
	for _, l := range lines {
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}
	return byEntry, nil
}

// Update replaces the entry header (optimistic lock on version) and its
// full line set.
func (r *EntryRepo) Update(ctx context.Context, entry *ledger.JournalEntry) error {
	sql, args, err := r.builder().
		Update(entryTable).
		Set("entry_date", entry.Date).
		Set("description", entry.Description).
		Set("period_id", entry.PeriodID).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entry.ID}).
		Where(squirrel.Eq{"version": entry.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("journal entry", entry.ID)
	}
	entry.Version++

	delSQL, delArgs, err := r.builder().
		Delete(lineTable).
		Where(squirrel.Eq{"entry_id": entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build line delete: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete old lines: %w", err)
	}

	return r.insertLines(ctx, entry)
}

func (r *EntryRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.builder().
		Delete(entryTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("journal entry", id)
	}
	return nil
}

func (r *EntryRepo) ListMovements(ctx context.Context, from, to time.Time) ([]ledger.MovementRow, error) {
	sql, args, err := r.builder().
		Select(
			"a.id AS account_id",
			"a.code AS account_code",
			"a.name AS account_name",
			"a.type AS account_type",
			"e.id AS entry_id",
			"l.id AS line_id",
			"e.entry_date",
			"e.description",
			"l.debit",
			"l.credit",
		).
		From(lineTable+" l").
		Join(entryTable+" e ON e.id = l.entry_id").
		Join(accountTable+" a ON a.id = l.account_id").
		Where(squirrel.GtOrEq{"e.entry_date": from}).
		Where(squirrel.LtOrEq{"e.entry_date": to}).
		OrderBy("a.code", "e.entry_date", "e.id", "l.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build movements select: %w", err)
	}

	var rows []ledger.MovementRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}
	return rows, nil
}

func (r *EntryRepo) AggregateInWindow(ctx context.Context, from, to time.Time) ([]ledger.AccountTotal, error) {
	q := r.aggregateBase().
		Where(squirrel.GtOrEq{"e.entry_date": from}).
		Where(squirrel.LtOrEq{"e.entry_date": to})
	return r.aggregate(ctx, q)
}

func (r *EntryRepo) AggregateThrough(ctx context.Context, to time.Time) ([]ledger.AccountTotal, error) {
	q := r.aggregateBase().
		Where(squirrel.LtOrEq{"e.entry_date": to})
	return r.aggregate(ctx, q)
}

func (r *EntryRepo) aggregateBase() squirrel.SelectBuilder {
	return r.builder().
		Select(
			"a.id AS account_id",
			"a.code",
			"a.name",
			"a.type",
			"COALESCE(SUM(l.debit), 0) AS total_debit",
			"COALESCE(SUM(l.credit), 0) AS total_credit",
		).
		From(lineTable + " l").
		Join(entryTable + " e ON e.id = l.entry_id").
		Join(accountTable + " a ON a.id = l.account_id").
		GroupBy("a.id", "a.code", "a.name", "a.type").
		OrderBy("a.code")
}

func (r *EntryRepo) aggregate(ctx context.Context, q squirrel.SelectBuilder) ([]ledger.AccountTotal, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build aggregate select: %w", err)
	}

	var totals []ledger.AccountTotal
	if err := pgxscan.Select(ctx, r.querier(ctx), &totals, sql, args...); err != nil {
		return nil, fmt.Errorf("aggregate movements: %w", err)
	}
	return totals, nil
}
