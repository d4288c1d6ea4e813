// Package ledger provides the bookkeeping domain: chart of accounts, journal
// entries, periods, per-period balance snapshots, and the account hierarchy.
package ledger

import (
	"context"

	"ledgerbook/internal/core/apperror"
)

// AccountType classifies an account for statement membership.
type AccountType string

const (
	TypeAsset     AccountType = "asset"
	TypeLiability AccountType = "liability"
	TypeEquity    AccountType = "equity"
	TypeIncome    AccountType = "income"
	TypeExpense   AccountType = "expense"
)

// StatementKind identifies which financial statement a row belongs to.
type StatementKind string

const (
	StatementBalanceSheet StatementKind = "BalanceSheet"
	StatementIncome       StatementKind = "IncomeStatement"
)

// typeTraits maps each account type to its statement membership and display
// sign convention. This is the single source of truth for type-dependent
// report behavior; reports must not switch on type strings themselves.
type typeTraits struct {
	statement  StatementKind
	displayAbs bool // display |balance| instead of the raw signed balance
}

var accountTypeTraits = map[AccountType]typeTraits{
	TypeAsset:     {statement: StatementBalanceSheet, displayAbs: true},
	TypeLiability: {statement: StatementBalanceSheet, displayAbs: true},
	TypeEquity:    {statement: StatementBalanceSheet, displayAbs: false},
	TypeIncome:    {statement: StatementIncome, displayAbs: false},
	TypeExpense:   {statement: StatementIncome, displayAbs: false},
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	_, ok := accountTypeTraits[t]
	return ok
}

// Statement returns the financial statement this account type belongs to.
func (t AccountType) Statement() StatementKind {
	return accountTypeTraits[t].statement
}

// DisplaysAbsolute reports whether balances of this type are displayed as
// absolute values (assets and liabilities) rather than raw signed balances.
func (t AccountType) DisplaysAbsolute() bool {
	return accountTypeTraits[t].displayAbs
}

// Account is an entry in the chart of accounts. The code is unique and
// hierarchical by convention (e.g. "1000", "1100"); the hierarchy itself
// lives in HierarchyEdge rows keyed by code.
type Account struct {
	ID      int64       `db:"id" json:"id"`
	Code    string      `db:"code" json:"code"`
	Name    string      `db:"name" json:"name"`
	Type    AccountType `db:"type" json:"type"`
	Version int         `db:"version" json:"version"`
}

// Validate checks account invariants.
func (a *Account) Validate(ctx context.Context) error {
	if a.Code == "" {
		return apperror.NewValidation("code is required").WithDetail("field", "code")
	}
	if a.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if !a.Type.Valid() {
		return apperror.NewValidation("invalid account type").
			WithDetail("field", "type").
			WithDetail("value", string(a.Type))
	}
	return nil
}
