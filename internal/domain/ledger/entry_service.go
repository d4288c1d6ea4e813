package ledger

import (
	"context"
	"fmt"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/core/tx"
	"ledgerbook/pkg/logger"
)

// EntryService provides business operations for journal entries.
// Entries must balance (Σdebit == Σcredit), reference existing accounts, and
// fall inside an open period's date window.
type EntryService struct {
	entries  EntryRepository
	accounts AccountRepository
	periods  PeriodRepository
	txm      tx.Manager
}

// NewEntryService creates a new journal entry service.
func NewEntryService(
	entries EntryRepository,
	accounts AccountRepository,
	periods PeriodRepository,
	txm tx.Manager,
) *EntryService {
	return &EntryService{
		entries:  entries,
		accounts: accounts,
		periods:  periods,
		txm:      txm,
	}
}

// Create validates and persists a new journal entry with its lines.
func (s *EntryService) Create(ctx context.Context, entry *JournalEntry) error {
	if err := s.prepare(ctx, entry); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.entries.Create(ctx, entry); err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "journal entry created",
		"entry_id", entry.ID,
		"period_id", entry.PeriodID,
		"lines", len(entry.Lines),
	)
	return nil
}

// GetByID retrieves a journal entry with its lines.
func (s *EntryService) GetByID(ctx context.Context, id int64) (*JournalEntry, error) {
	return s.entries.GetByID(ctx, id)
}

// ListByPeriod returns all entries assigned to a period.
func (s *EntryService) ListByPeriod(ctx context.Context, periodID int64) ([]JournalEntry, error) {
	if _, err := s.periods.GetByID(ctx, periodID); err != nil {
		return nil, err
	}
	return s.entries.ListByPeriod(ctx, periodID)
}

// Update validates and replaces an entry and its lines.
func (s *EntryService) Update(ctx context.Context, entry *JournalEntry) error {
	if err := s.prepare(ctx, entry); err != nil {
		return err
	}

	// The stored entry's period must be open too, so entries cannot be
	// moved out of a closed period.
	existing, err := s.entries.GetByID(ctx, entry.ID)
	if err != nil {
		return err
	}
	if existing.PeriodID != entry.PeriodID {
		if err := s.guardOpenPeriod(ctx, existing.PeriodID); err != nil {
			return err
		}
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.entries.Update(ctx, entry); err != nil {
			return fmt.Errorf("update entry: %w", err)
		}
		return nil
	})
}

// Delete removes an entry and its lines. Entries in closed periods cannot
// be deleted.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guardOpenPeriod(ctx, entry.PeriodID); err != nil {
		return err
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.entries.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		return nil
	})
}

// prepare runs the write-time checks shared by Create and Update.
func (s *EntryService) prepare(ctx context.Context, entry *JournalEntry) error {
	if err := entry.Validate(ctx); err != nil {
		return err
	}

	period, err := s.periods.GetByID(ctx, entry.PeriodID)
	if err != nil {
		return err
	}
	if period.Closed {
		return apperror.NewPeriodClosed(period.ID)
	}
	if !period.Contains(entry.Date) {
		return apperror.NewValidation("entry date is outside the period's date range").
			WithDetail("date", entry.Date).
			WithDetail("period_id", period.ID)
	}

	for i, l := range entry.Lines {
		exists, err := s.accounts.Exists(ctx, l.AccountID)
		if err != nil {
			return fmt.Errorf("check account: %w", err)
		}
		if !exists {
			return apperror.NewValidation("line references unknown account").
				WithDetail("line", i).
				WithDetail("account_id", l.AccountID)
		}
	}

	return nil
}

func (s *EntryService) guardOpenPeriod(ctx context.Context, periodID int64) error {
	period, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return err
	}
	if period.Closed {
		return apperror.NewPeriodClosed(period.ID)
	}
	return nil
}
