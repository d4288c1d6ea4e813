package ledger

import (
	"context"
	"fmt"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/core/tx"
)

// AccountService provides business operations for the chart of accounts.
type AccountService struct {
	repo AccountRepository
	txm  tx.Manager
}

// NewAccountService creates a new account service.
func NewAccountService(repo AccountRepository, txm tx.Manager) *AccountService {
	return &AccountService{repo: repo, txm: txm}
}

// Create validates and persists a new account.
func (s *AccountService) Create(ctx context.Context, account *Account) error {
	if err := account.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCode(ctx, account.Code)
	if err != nil {
		return fmt.Errorf("check account code: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("account", "code", account.Code)
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, account); err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an account by ID.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByCode retrieves an account by code.
func (s *AccountService) GetByCode(ctx context.Context, code string) (*Account, error) {
	return s.repo.GetByCode(ctx, code)
}

// List returns all accounts ordered by code.
func (s *AccountService) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// Update validates and persists account changes with optimistic locking.
func (s *AccountService) Update(ctx context.Context, account *Account) error {
	if err := account.Validate(ctx); err != nil {
		return err
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, account); err != nil {
			return fmt.Errorf("update account: %w", err)
		}
		return nil
	})
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		return nil
	})
}
