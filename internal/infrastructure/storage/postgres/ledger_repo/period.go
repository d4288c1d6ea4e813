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

var _ ledger.PeriodRepository = (*PeriodRepo)(nil)

const periodColumns = "id, start_date, end_date, description, closed, prior_period_id, version"

// PeriodRepo implements ledger.PeriodRepository.
type PeriodRepo struct {
	base
}

// NewPeriodRepo creates a new period repository.
func NewPeriodRepo(txm *postgres.TxManager) *PeriodRepo {
	return &PeriodRepo{base{txm: txm}}
}

func (r *PeriodRepo) Create(ctx context.Context, period *ledger.Period) error {
	q := r.builder().
		Insert(periodTable).
		Columns("start_date", "end_date", "description", "closed", "prior_period_id", "version").
		Values(period.StartDate, period.EndDate, period.Description, period.Closed, period.PriorPeriodID, 1).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &period.ID, sql, args...); err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	period.Version = 1
	return nil
}

func (r *PeriodRepo) GetByID(ctx context.Context, id int64) (*ledger.Period, error) {
	sql, args, err := r.builder().
		Select(periodColumns).
		From(periodTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var period ledger.Period
	if err := pgxscan.Get(ctx, r.querier(ctx), &period, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("period", id)
		}
		return nil, fmt.Errorf("select period: %w", err)
	}
	return &period, nil
}

func (r *PeriodRepo) List(ctx context.Context) ([]ledger.Period, error) {
	sql, args, err := r.builder().
		Select(periodColumns).
		From(periodTable).
		OrderBy("start_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var periods []ledger.Period
	if err := pgxscan.Select(ctx, r.querier(ctx), &periods, sql, args...); err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

func (r *PeriodRepo) Update(ctx context.Context, period *ledger.Period) error {
	sql, args, err := r.builder().
		Update(periodTable).
		Set("start_date", period.StartDate).
		Set("end_date", period.EndDate).
		Set("description", period.Description).
		Set("closed", period.Closed).
		Set("prior_period_id", period.PriorPeriodID).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": period.ID}).
		Where(squirrel.Eq{"version": period.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("period", period.ID)
	}
	period.Version++
	return nil
}

func (r *PeriodRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.builder().
		Delete(periodTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("period", id)
	}
	return nil
}
