// Package ledger_repo provides PostgreSQL implementations of the ledger
// repository interfaces.
package ledger_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"ledgerbook/internal/infrastructure/storage/postgres"
)

const (
	accountTable   = "accounts"
	periodTable    = "periods"
	entryTable     = "journal_entries"
	lineTable      = "entry_lines"
	snapshotTable  = "account_period_balances"
	hierarchyTable = "hierarchy_edges"
)

// base carries what every repository in this package needs: the transaction
// manager (queries go through it so they join any active transaction) and a
// squirrel builder with PostgreSQL placeholders.
type base struct {
	txm *postgres.TxManager
}

func (b base) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (b base) querier(ctx context.Context) postgres.Querier {
	return b.txm.GetQuerier(ctx)
}
