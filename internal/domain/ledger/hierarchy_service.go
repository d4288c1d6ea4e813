package ledger

import (
	"context"
	"fmt"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/core/tx"
)

// HierarchyService provides business operations for hierarchy edges.
// Child codes are unique: a second edge for the same child is a conflict.
type HierarchyService struct {
	repo HierarchyRepository
	txm  tx.Manager
}

// NewHierarchyService creates a new hierarchy service.
func NewHierarchyService(repo HierarchyRepository, txm tx.Manager) *HierarchyService {
	return &HierarchyService{repo: repo, txm: txm}
}

// Create validates and persists a new edge.
func (s *HierarchyService) Create(ctx context.Context, edge *HierarchyEdge) error {
	if err := edge.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByChildCode(ctx, edge.ChildCode, 0)
	if err != nil {
		return fmt.Errorf("check child code: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("hierarchy edge", "child code", edge.ChildCode)
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, edge); err != nil {
			return fmt.Errorf("create hierarchy edge: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an edge by ID.
func (s *HierarchyService) GetByID(ctx context.Context, id int64) (*HierarchyEdge, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all edges ordered by child code.
func (s *HierarchyService) List(ctx context.Context) ([]HierarchyEdge, error) {
	return s.repo.List(ctx)
}

// Update validates and persists edge changes.
func (s *HierarchyService) Update(ctx context.Context, edge *HierarchyEdge) error {
	if err := edge.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByChildCode(ctx, edge.ChildCode, edge.ID)
	if err != nil {
		return fmt.Errorf("check child code: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("hierarchy edge", "child code", edge.ChildCode)
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, edge); err != nil {
			return fmt.Errorf("update hierarchy edge: %w", err)
		}
		return nil
	})
}

// Delete removes an edge.
func (s *HierarchyService) Delete(ctx context.Context, id int64) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete hierarchy edge: %w", err)
		}
		return nil
	})
}

// Resolver loads all edges and builds a request-scoped resolver.
func (s *HierarchyService) Resolver(ctx context.Context) (*HierarchyResolver, error) {
	edges, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hierarchy edges: %w", err)
	}
	return NewHierarchyResolver(edges), nil
}
