package ledger

import (
	"context"
	"fmt"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/core/tx"
	"ledgerbook/pkg/logger"
)

// PeriodCloser computes and persists balance snapshots when a period closes.
// The concrete implementation lives in the closing package; the interface
// here keeps the dependency direction clean.
type PeriodCloser interface {
	Run(ctx context.Context, periodID int64) error
}

// PeriodService provides business operations for accounting periods and
// fires the closing routine on open→closed transitions.
type PeriodService struct {
	periods PeriodRepository
	closer  PeriodCloser
	txm     tx.Manager
}

// NewPeriodService creates a new period service.
func NewPeriodService(periods PeriodRepository, closer PeriodCloser, txm tx.Manager) *PeriodService {
	return &PeriodService{periods: periods, closer: closer, txm: txm}
}

// Create validates and persists a new period. A period created already
// closed is snapshotted immediately, in the same transaction.
func (s *PeriodService) Create(ctx context.Context, period *Period) error {
	if err := period.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkPriorOverlap(ctx, period); err != nil {
		return err
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.periods.Create(ctx, period); err != nil {
			return fmt.Errorf("create period: %w", err)
		}
		if period.Closed {
			if err := s.closer.Run(ctx, period.ID); err != nil {
				return fmt.Errorf("close period: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a period by ID.
func (s *PeriodService) GetByID(ctx context.Context, id int64) (*Period, error) {
	return s.periods.GetByID(ctx, id)
}

// List returns all periods ordered by start date.
func (s *PeriodService) List(ctx context.Context) ([]Period, error) {
	return s.periods.List(ctx)
}

// Update validates and persists period changes. Only a false→true transition
// of the closed flag triggers the closing routine; saving an already-closed
// period does not re-close it (use Close for that).
func (s *PeriodService) Update(ctx context.Context, period *Period) error {
	if err := period.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkPriorOverlap(ctx, period); err != nil {
		return err
	}

	existing, err := s.periods.GetByID(ctx, period.ID)
	if err != nil {
		return err
	}
	closing := !existing.Closed && period.Closed

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.periods.Update(ctx, period); err != nil {
			return fmt.Errorf("update period: %w", err)
		}
		if closing {
			if err := s.closer.Run(ctx, period.ID); err != nil {
				return fmt.Errorf("close period: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if closing {
		logger.Info(ctx, "period closed", "period_id", period.ID)
	}
	return nil
}

// Close invokes the closing routine directly, regardless of the current
// closed flag, and marks the period closed. Reapplying it with unchanged
// journal data yields identical snapshot rows.
func (s *PeriodService) Close(ctx context.Context, id int64) error {
	period, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if !period.Closed {
			period.Closed = true
			if err := s.periods.Update(ctx, period); err != nil {
				return fmt.Errorf("mark period closed: %w", err)
			}
		}
		if err := s.closer.Run(ctx, id); err != nil {
			return fmt.Errorf("close period: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "period closed", "period_id", id)
	return nil
}

// Delete removes a period.
func (s *PeriodService) Delete(ctx context.Context, id int64) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.periods.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete period: %w", err)
		}
		return nil
	})
}

// checkPriorOverlap rejects a period whose window overlaps the referenced
// prior period. A missing prior reference is fine (openings default to 0).
func (s *PeriodService) checkPriorOverlap(ctx context.Context, period *Period) error {
	if period.PriorPeriodID == nil {
		return nil
	}
	prior, err := s.periods.GetByID(ctx, *period.PriorPeriodID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("prior period does not exist").
				WithDetail("prior_period_id", *period.PriorPeriodID)
		}
		return err
	}
	if !prior.EndDate.Before(period.StartDate) {
		return apperror.NewPeriodOverlap(period.ID, prior.ID)
	}
	return nil
}
