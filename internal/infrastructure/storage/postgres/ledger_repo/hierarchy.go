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

var _ ledger.HierarchyRepository = (*HierarchyRepo)(nil)

// HierarchyRepo implements ledger.HierarchyRepository.
type HierarchyRepo struct {
	base
}

// NewHierarchyRepo creates a new hierarchy repository.
func NewHierarchyRepo(txm *postgres.TxManager) *HierarchyRepo {
	return &HierarchyRepo{base{txm: txm}}
}

func (r *HierarchyRepo) Create(ctx context.Context, edge *ledger.HierarchyEdge) error {
	sql, args, err := r.builder().
		Insert(hierarchyTable).
		Columns("child_code", "parent_code", "level").
		Values(edge.ChildCode, edge.ParentCode, edge.Level).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &edge.ID, sql, args...); err != nil {
		return fmt.Errorf("insert hierarchy edge: %w", err)
	}
	return nil
}

func (r *HierarchyRepo) GetByID(ctx context.Context, id int64) (*ledger.HierarchyEdge, error) {
	sql, args, err := r.builder().
		Select("id", "child_code", "parent_code", "level").
		From(hierarchyTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var edge ledger.HierarchyEdge
	if err := pgxscan.Get(ctx, r.querier(ctx), &edge, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("hierarchy edge", id)
		}
		return nil, fmt.Errorf("select hierarchy edge: %w", err)
	}
	return &edge, nil
}

func (r *HierarchyRepo) List(ctx context.Context) ([]ledger.HierarchyEdge, error) {
	sql, args, err := r.builder().
		Select("id", "child_code", "parent_code", "level").
		From(hierarchyTable).
		OrderBy("child_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var edges []ledger.HierarchyEdge
	if err := pgxscan.Select(ctx, r.querier(ctx), &edges, sql, args...); err != nil {
		return nil, fmt.Errorf("list hierarchy edges: %w", err)
	}
	return edges, nil
}

func (r *HierarchyRepo) Update(ctx context.Context, edge *ledger.HierarchyEdge) error {
	sql, args, err := r.builder().
		Update(hierarchyTable).
		Set("child_code", edge.ChildCode).
		Set("parent_code", edge.ParentCode).
		Set("level", edge.Level).
		Where(squirrel.Eq{"id": edge.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update hierarchy edge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("hierarchy edge", edge.ID)
	}
	return nil
}

func (r *HierarchyRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.builder().
		Delete(hierarchyTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete hierarchy edge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("hierarchy edge", id)
	}
	return nil
}

func (r *HierarchyRepo) ExistsByChildCode(ctx context.Context, childCode string, excludeID int64) (bool, error) {
	inner := r.builder().
		Select("1").
		From(hierarchyTable).
		Where(squirrel.Eq{"child_code": childCode})
	if excludeID != 0 {
		inner = inner.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := inner.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	var exists bool
	if err := pgxscan.Get(ctx, r.querier(ctx), &exists, sql, args...); err != nil {
		return false, fmt.Errorf("check child code exists: %w", err)
	}
	return exists, nil
}
