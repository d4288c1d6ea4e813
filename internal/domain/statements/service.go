package statements

import (
	"context"
	"fmt"
	"sort"

	"ledgerbook/internal/core/tx"
	"ledgerbook/internal/core/types"
	"ledgerbook/internal/domain/balance"
	"ledgerbook/internal/domain/ledger"
)

// Service composes report views from journal data, prior-period snapshots,
// and the account hierarchy. All reports are read-only and all-or-nothing:
// any store error aborts the whole computation.
type Service struct {
	accounts  ledger.AccountRepository
	entries   ledger.EntryRepository
	periods   ledger.PeriodRepository
	snapshots ledger.SnapshotRepository
	hierarchy ledger.HierarchyRepository
	txm       tx.ReadOnlyManager
}

// NewService creates a new statement composer.
func NewService(
	accounts ledger.AccountRepository,
	entries ledger.EntryRepository,
	periods ledger.PeriodRepository,
	snapshots ledger.SnapshotRepository,
	hierarchy ledger.HierarchyRepository,
	txm tx.ReadOnlyManager,
) *Service {
	return &Service{
		accounts:  accounts,
		entries:   entries,
		periods:   periods,
		snapshots: snapshots,
		hierarchy: hierarchy,
		txm:       txm,
	}
}

// reportContext is the shared input every report starts from: the period,
// prior-period closing balances keyed by account, account metadata, and the
// hierarchy resolver.
type reportContext struct {
	period   *ledger.Period
	openings map[int64]types.Money
	accounts map[int64]ledger.Account
	resolver *ledger.HierarchyResolver
}

func (s *Service) loadReportContext(ctx context.Context, periodID int64) (*reportContext, error) {
	period, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	openings := map[int64]types.Money{}
	if period.PriorPeriodID != nil {
		openings, err = s.snapshots.ClosingByAccount(ctx, *period.PriorPeriodID)
		if err != nil {
			return nil, fmt.Errorf("load prior period closings: %w", err)
		}
	}

	all, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	byID := make(map[int64]ledger.Account, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}

	edges, err := s.hierarchy.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hierarchy edges: %w", err)
	}

	return &reportContext{
		period:   period,
		openings: openings,
		accounts: byID,
		resolver: ledger.NewHierarchyResolver(edges),
	}, nil
}

func (rc *reportContext) opening(accountID int64) types.Money {
	if v, ok := rc.openings[accountID]; ok {
		return v
	}
	return types.Zero()
}

// GeneralLedger returns, per account, the opening balance and the period's
// chronological movements with running balances. Accounts with a prior
// snapshot but no movement in the window still get a section, with
// opening == closing and no movements.
func (s *Service) GeneralLedger(ctx context.Context, periodID int64) ([]GeneralLedgerAccount, error) {
	var out []GeneralLedgerAccount
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		rc, err := s.loadReportContext(ctx, periodID)
		if err != nil {
			return err
		}

		movs, err := s.entries.ListMovements(ctx, rc.period.StartDate, rc.period.EndDate)
		if err != nil {
			return fmt.Errorf("load movements: %w", err)
		}

		byAccount := map[int64][]ledger.MovementRow{}
		for _, m := range movs {
			byAccount[m.AccountID] = append(byAccount[m.AccountID], m)
		}

		out = make([]GeneralLedgerAccount, 0, len(byAccount))
		for accountID, rows := range byAccount {
			section := GeneralLedgerAccount{
				AccountID:      accountID,
				AccountCode:    rows[0].AccountCode,
				AccountName:    rows[0].AccountName,
				OpeningBalance: rc.opening(accountID),
			}

			ms := make([]balance.Movement, len(rows))
			for i, r := range rows {
				ms[i] = balance.Movement{
					Date:    r.Date,
					EntryID: r.EntryID,
					LineID:  r.LineID,
					Debit:   r.Debit,
					Credit:  r.Credit,
				}
			}
			steps := balance.Running(section.OpeningBalance, ms)

			descByLine := make(map[int64]string, len(rows))
			for _, r := range rows {
				descByLine[r.LineID] = r.Description
			}

			section.Movements = make([]GeneralLedgerMovement, len(steps))
			for i, st := range steps {
				section.Movements[i] = GeneralLedgerMovement{
					Date:           st.Date,
					EntryID:        st.EntryID,
					Description:    descByLine[st.LineID],
					Debit:          st.Debit,
					Credit:         st.Credit,
					RunningBalance: st.Running,
				}
			}
			section.ClosingBalance = section.OpeningBalance
			if len(steps) > 0 {
				section.ClosingBalance = steps[len(steps)-1].Running
			}
			out = append(out, section)
		}

		// Prior-snapshot accounts untouched this period still appear.
		for accountID := range rc.openings {
			if _, moved := byAccount[accountID]; moved {
				continue
			}
			acc, ok := rc.accounts[accountID]
			if !ok {
				continue
			}
			opening := rc.opening(accountID)
			out = append(out, GeneralLedgerAccount{
				AccountID:      accountID,
				AccountCode:    acc.Code,
				AccountName:    acc.Name,
				OpeningBalance: opening,
				ClosingBalance: opening,
				Movements:      []GeneralLedgerMovement{},
			})
		}

		sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
		for i := range out {
			p := rc.resolver.Resolve(out[i].AccountCode)
			out[i].ParentCode, out[i].Level = p.ParentCode, p.Level
		}
		return nil
	})
	return out, err
}

// TrialBalance returns the per-account opening/debit/credit/closing summary
// for a period. Closing = opening + debit − credit, exact decimal
// arithmetic. Accounts with a prior snapshot but no movement appear with
// opening == closing and zero totals.
func (s *Service) TrialBalance(ctx context.Context, periodID int64) ([]TrialBalanceRow, error) {
	var out []TrialBalanceRow
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		rc, err := s.loadReportContext(ctx, periodID)
		if err != nil {
			return err
		}

		totals, err := s.entries.AggregateInWindow(ctx, rc.period.StartDate, rc.period.EndDate)
		if err != nil {
			return fmt.Errorf("aggregate movements: %w", err)
		}

		seen := make(map[int64]bool, len(totals))
		out = make([]TrialBalanceRow, 0, len(totals))
		for _, t := range totals {
			seen[t.AccountID] = true
			opening := rc.opening(t.AccountID)
			out = append(out, TrialBalanceRow{
				AccountID:      t.AccountID,
				Code:           t.Code,
				Name:           t.Name,
				OpeningBalance: opening,
				TotalDebit:     t.TotalDebit,
				TotalCredit:    t.TotalCredit,
				ClosingBalance: opening.Add(t.TotalDebit).Sub(t.TotalCredit),
			})
		}

		for accountID := range rc.openings {
			if seen[accountID] {
				continue
			}
			acc, ok := rc.accounts[accountID]
			if !ok {
				continue
			}
			opening := rc.opening(accountID)
			out = append(out, TrialBalanceRow{
				AccountID:      accountID,
				Code:           acc.Code,
				Name:           acc.Name,
				OpeningBalance: opening,
				TotalDebit:     types.Zero(),
				TotalCredit:    types.Zero(),
				ClosingBalance: opening,
			})
		}

		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		for i := range out {
			p := rc.resolver.Resolve(out[i].Code)
			out[i].ParentCode, out[i].Level = p.ParentCode, p.Level
		}
		return nil
	})
	return out, err
}

// IncomeStatement returns income and expense account activity for the
// period. Rows are selected by account type, never by the sign of the
// result; result = credit − debit either way.
func (s *Service) IncomeStatement(ctx context.Context, periodID int64) ([]IncomeStatementRow, error) {
	var out []IncomeStatementRow
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		rc, err := s.loadReportContext(ctx, periodID)
		if err != nil {
			return err
		}

		totals, err := s.entries.AggregateInWindow(ctx, rc.period.StartDate, rc.period.EndDate)
		if err != nil {
			return fmt.Errorf("aggregate movements: %w", err)
		}

		out = make([]IncomeStatementRow, 0, len(totals))
		for _, t := range totals {
			if t.Type.Statement() != ledger.StatementIncome {
				continue
			}
			p := rc.resolver.Resolve(t.Code)
			out = append(out, IncomeStatementRow{
				AccountID:   t.AccountID,
				Code:        t.Code,
				Name:        t.Name,
				Type:        t.Type,
				TotalDebit:  t.TotalDebit,
				TotalCredit: t.TotalCredit,
				Result:      t.TotalCredit.Sub(t.TotalDebit),
				ParentCode:  p.ParentCode,
				Level:       p.Level,
			})
		}

		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		return nil
	})
	return out, err
}

// BalanceSheet returns asset, liability, and equity positions at period end,
// with the accounting-equation check. Raw balance = opening + debit − credit;
// asset and liability rows display the absolute value, equity the raw
// figure. Difference = Σassets − Σ(liabilities + equity) in the natural sign
// convention (credit-side balances negated); Balanced means difference 0.
func (s *Service) BalanceSheet(ctx context.Context, periodID int64) (*BalanceSheet, error) {
	var out *BalanceSheet
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		rc, err := s.loadReportContext(ctx, periodID)
		if err != nil {
			return err
		}

		totals, err := s.entries.AggregateInWindow(ctx, rc.period.StartDate, rc.period.EndDate)
		if err != nil {
			return fmt.Errorf("aggregate movements: %w", err)
		}

		assetTotal := types.Zero()
		liabEquityTotal := types.Zero()
		seen := make(map[int64]bool, len(totals))
		rows := make([]BalanceSheetRow, 0, len(totals))

		appendRow := func(acc ledger.Account, debit, credit types.Money) {
			opening := rc.opening(acc.ID)
			raw := opening.Add(debit).Sub(credit)

			if acc.Type == ledger.TypeAsset {
				assetTotal = assetTotal.Add(raw)
			} else {
				liabEquityTotal = liabEquityTotal.Add(raw.Neg())
			}

			displayed := raw
			if acc.Type.DisplaysAbsolute() {
				displayed = raw.Abs()
			}
			nature := NatureDebtor
			if displayed.IsNegative() {
				nature = NatureCreditor
			}

			p := rc.resolver.Resolve(acc.Code)
			rows = append(rows, BalanceSheetRow{
				AccountID:      acc.ID,
				Code:           acc.Code,
				Name:           acc.Name,
				Type:           acc.Type,
				OpeningBalance: opening,
				TotalDebit:     debit,
				TotalCredit:    credit,
				Balance:        displayed,
				Nature:         nature,
				ParentCode:     p.ParentCode,
				Level:          p.Level,
			})
		}

		for _, t := range totals {
			if t.Type.Statement() != ledger.StatementBalanceSheet {
				continue
			}
			seen[t.AccountID] = true
			appendRow(ledger.Account{ID: t.AccountID, Code: t.Code, Name: t.Name, Type: t.Type},
				t.TotalDebit, t.TotalCredit)
		}

		for accountID := range rc.openings {
			if seen[accountID] {
				continue
			}
			acc, ok := rc.accounts[accountID]
			if !ok || acc.Type.Statement() != ledger.StatementBalanceSheet {
				continue
			}
			appendRow(acc, types.Zero(), types.Zero())
		}

		sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

		difference := assetTotal.Sub(liabEquityTotal)
		out = &BalanceSheet{
			Rows:       rows,
			Balanced:   difference.IsZero(),
			Difference: difference,
		}
		return nil
	})
	return out, err
}

// Combined returns the two statements as one tagged row set. Balance-sheet
// rows accumulate all activity through the period's end date; income rows
// cover only the period's own window. Balance-sheet rows come first, each
// group ordered by code.
func (s *Service) Combined(ctx context.Context, periodID int64) ([]CombinedRow, error) {
	var out []CombinedRow
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		period, err := s.periods.GetByID(ctx, periodID)
		if err != nil {
			return err
		}

		cumulative, err := s.entries.AggregateThrough(ctx, period.EndDate)
		if err != nil {
			return fmt.Errorf("aggregate through period end: %w", err)
		}
		windowed, err := s.entries.AggregateInWindow(ctx, period.StartDate, period.EndDate)
		if err != nil {
			return fmt.Errorf("aggregate period window: %w", err)
		}

		var bs, is []CombinedRow
		for _, t := range cumulative {
			if t.Type.Statement() != ledger.StatementBalanceSheet {
				continue
			}
			bs = append(bs, CombinedRow{
				Statement:   ledger.StatementBalanceSheet,
				AccountID:   t.AccountID,
				Code:        t.Code,
				Name:        t.Name,
				TotalDebit:  t.TotalDebit,
				TotalCredit: t.TotalCredit,
				Balance:     t.TotalDebit.Sub(t.TotalCredit),
			})
		}
		for _, t := range windowed {
			if t.Type.Statement() != ledger.StatementIncome {
				continue
			}
			is = append(is, CombinedRow{
				Statement:   ledger.StatementIncome,
				AccountID:   t.AccountID,
				Code:        t.Code,
				Name:        t.Name,
				TotalDebit:  t.TotalDebit,
				TotalCredit: t.TotalCredit,
				Balance:     t.TotalCredit.Sub(t.TotalDebit),
			})
		}

		sort.Slice(bs, func(i, j int) bool { return bs[i].Code < bs[j].Code })
		sort.Slice(is, func(i, j int) bool { return is[i].Code < is[j].Code })
		out = append(bs, is...)
		return nil
	})
	return out, err
}

// PeriodBalances returns the persisted snapshot rows for a period, so closed
// periods can be inspected without recomputation.
func (s *Service) PeriodBalances(ctx context.Context, periodID int64) ([]ledger.AccountPeriodBalance, error) {
	var out []ledger.AccountPeriodBalance
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		if _, err := s.periods.GetByID(ctx, periodID); err != nil {
			return err
		}
		rows, err := s.snapshots.ListByPeriod(ctx, periodID)
		if err != nil {
			return fmt.Errorf("list snapshot rows: %w", err)
		}
		out = rows
		return nil
	})
	return out, err
}

// JournalBook returns the period's entries in chronological order, each line
// annotated with its account code and name.
func (s *Service) JournalBook(ctx context.Context, periodID int64) ([]JournalBookEntry, error) {
	var out []JournalBookEntry
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		if _, err := s.periods.GetByID(ctx, periodID); err != nil {
			return err
		}

		entries, err := s.entries.ListByPeriod(ctx, periodID)
		if err != nil {
			return fmt.Errorf("load entries: %w", err)
		}
		all, err := s.accounts.List(ctx)
		if err != nil {
			return fmt.Errorf("load accounts: %w", err)
		}
		byID := make(map[int64]ledger.Account, len(all))
		for _, a := range all {
			byID[a.ID] = a
		}

		sort.Slice(entries, func(i, j int) bool {
			if !entries[i].Date.Equal(entries[j].Date) {
				return entries[i].Date.Before(entries[j].Date)
			}
			return entries[i].ID < entries[j].ID
		})

		out = make([]JournalBookEntry, len(entries))
		for i, e := range entries {
			lines := make([]JournalBookLine, len(e.Lines))
			for j, l := range e.Lines {
				acc := byID[l.AccountID]
				lines[j] = JournalBookLine{
					AccountID:   l.AccountID,
					AccountCode: acc.Code,
					AccountName: acc.Name,
					Debit:       l.Debit,
					Credit:      l.Credit,
				}
			}
			out[i] = JournalBookEntry{
				EntryID:     e.ID,
				Date:        e.Date,
				Description: e.Description,
				Lines:       lines,
			}
		}
		return nil
	})
	return out, err
}
