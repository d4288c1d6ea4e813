// Package statements composes the report views served to callers: general
// ledger, trial balance, income statement, balance sheet, combined
// statements, and the journal book.
package statements

import (
	"time"

	"ledgerbook/internal/core/types"
	"ledgerbook/internal/domain/ledger"
)

// BalanceNature labels the side a displayed balance sits on.
type BalanceNature string

const (
	NatureDebtor   BalanceNature = "Debtor"
	NatureCreditor BalanceNature = "Creditor"
)

// GeneralLedgerMovement is one line in an account's general ledger, with the
// running balance after applying it.
type GeneralLedgerMovement struct {
	Date           time.Time   `json:"date"`
	EntryID        int64       `json:"entryId"`
	Description    string      `json:"description"`
	Debit          types.Money `json:"debit"`
	Credit         types.Money `json:"credit"`
	RunningBalance types.Money `json:"runningBalance"`
}

// GeneralLedgerAccount is one account's section of the general ledger:
// opening balance plus its chronological movements.
type GeneralLedgerAccount struct {
	AccountID      int64                   `json:"accountId"`
	AccountCode    string                  `json:"accountCode"`
	AccountName    string                  `json:"accountName"`
	ParentCode     *string                 `json:"parentCode,omitempty"`
	Level          *int                    `json:"level,omitempty"`
	OpeningBalance types.Money             `json:"openingBalance"`
	ClosingBalance types.Money             `json:"closingBalance"`
	Movements      []GeneralLedgerMovement `json:"movements"`
}

// TrialBalanceRow summarizes one account over a period.
type TrialBalanceRow struct {
	AccountID      int64       `json:"accountId"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	OpeningBalance types.Money `json:"openingBalance"`
	TotalDebit     types.Money `json:"totalDebit"`
	TotalCredit    types.Money `json:"totalCredit"`
	ClosingBalance types.Money `json:"closingBalance"`
	ParentCode     *string     `json:"parentCode,omitempty"`
	Level          *int        `json:"level,omitempty"`
}

// IncomeStatementRow is one income or expense account's period activity.
// Result is credit − debit; classification follows the account type, the
// sign only affects how the figure reads.
type IncomeStatementRow struct {
	AccountID   int64              `json:"accountId"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Type        ledger.AccountType `json:"type"`
	TotalDebit  types.Money        `json:"totalDebit"`
	TotalCredit types.Money        `json:"totalCredit"`
	Result      types.Money        `json:"result"`
	ParentCode  *string            `json:"parentCode,omitempty"`
	Level       *int               `json:"level,omitempty"`
}

// BalanceSheetRow is one asset, liability, or equity account's position.
// Balance is the displayed figure: absolute value for asset and liability
// accounts, the raw signed balance for equity.
type BalanceSheetRow struct {
	AccountID      int64              `json:"accountId"`
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	Type           ledger.AccountType `json:"type"`
	OpeningBalance types.Money        `json:"openingBalance"`
	TotalDebit     types.Money        `json:"totalDebit"`
	TotalCredit    types.Money        `json:"totalCredit"`
	Balance        types.Money        `json:"balance"`
	Nature         BalanceNature      `json:"nature"`
	ParentCode     *string            `json:"parentCode,omitempty"`
	Level          *int               `json:"level,omitempty"`
}

// BalanceSheet is the full statement with its equation check: Balanced is
// true only when assets equal liabilities plus equity, and Difference holds
// assets − (liabilities + equity) otherwise.
type BalanceSheet struct {
	Rows       []BalanceSheetRow `json:"rows"`
	Balanced   bool              `json:"balanced"`
	Difference types.Money       `json:"difference"`
}

// CombinedRow is one line of the combined financial statements, tagged with
// the statement it belongs to. Balance-sheet rows accumulate all activity
// through period end; income-statement rows cover the period window only.
type CombinedRow struct {
	Statement   ledger.StatementKind `json:"statement"`
	AccountID   int64                `json:"accountId"`
	Code        string               `json:"code"`
	Name        string               `json:"name"`
	TotalDebit  types.Money          `json:"totalDebit"`
	TotalCredit types.Money          `json:"totalCredit"`
	Balance     types.Money          `json:"balance"`
}

// JournalBookLine is one entry line annotated with its account.
type JournalBookLine struct {
	AccountID   int64       `json:"accountId"`
	AccountCode string      `json:"accountCode"`
	AccountName string      `json:"accountName"`
	Debit       types.Money `json:"debit"`
	Credit      types.Money `json:"credit"`
}

// JournalBookEntry is one journal entry in the chronological journal book.
type JournalBookEntry struct {
	EntryID     int64             `json:"entryId"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Lines       []JournalBookLine `json:"lines"`
}
