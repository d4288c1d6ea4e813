package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/infrastructure/storage/postgres"
)

var _ ledger.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implements ledger.AccountRepository.
type AccountRepo struct {
	base
}

// NewAccountRepo creates a new account repository.
func NewAccountRepo(txm *postgres.TxManager) *AccountRepo {
	return &AccountRepo{base{txm: txm}}
}

func (r *AccountRepo) Create(ctx context.Context, account *ledger.Account) error {
	q := r.builder().
		Insert(accountTable).
		Columns("code", "name", "type", "version").
		Values(account.Code, account.Name, account.Type, 1).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &account.ID, sql, args...); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	account.Version = 1
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*ledger.Account, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, id)
}

func (r *AccountRepo) GetByCode(ctx context.Context, code string) (*ledger.Account, error) {
	return r.findOne(ctx, squirrel.Eq{"code": code}, code)
}

func (r *AccountRepo) findOne(ctx context.Context, where squirrel.Eq, key any) (*ledger.Account, error) {
	sql, args, err := r.builder().
		Select("id", "code", "name", "type", "version").
		From(accountTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var account ledger.Account
	if err := pgxscan.Get(ctx, r.querier(ctx), &account, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("account", key)
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]ledger.Account, error) {
	sql, args, err := r.builder().
		Select("id", "code", "name", "type", "version").
		From(accountTable).
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var accounts []ledger.Account
	if err := pgxscan.Select(ctx, r.querier(ctx), &accounts, sql, args...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Update applies changes with optimistic locking on the version column.
func (r *AccountRepo) Update(ctx context.Context, account *ledger.Account) error {
	sql, args, err := r.builder().
		Update(accountTable).
		Set("code", account.Code).
		Set("name", account.Name).
		Set("type", account.Type).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": account.ID}).
		Where(squirrel.Eq{"version": account.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("account", account.ID)
	}
	account.Version++
	return nil
}

func (r *AccountRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.builder().
		Delete(accountTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("account", id)
	}
	return nil
}

func (r *AccountRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"id": id})
}

func (r *AccountRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"code": code})
}

func (r *AccountRepo) exists(ctx context.Context, where squirrel.Eq) (bool, error) {
	inner := r.builder().Select("1").From(accountTable).Where(where)
	sql, args, err := inner.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	var exists bool
	if err := pgxscan.Get(ctx, r.querier(ctx), &exists, sql, args...); err != nil {
		return false, fmt.Errorf("check account exists: %w", err)
	}
	return exists, nil
}
