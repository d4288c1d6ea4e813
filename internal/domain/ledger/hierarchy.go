package ledger

import (
	"context"

	"ledgerbook/internal/core/apperror"
)

// HierarchyEdge maps a child account code to its parent code with the
// child's depth below the root. Edges exist purely for report rollup and
// display ordering; amounts are never summed through them.
//
// Child codes are unique: the store rejects a second edge for the same child
// rather than leaving resolution ambiguous.
type HierarchyEdge struct {
	ID         int64  `db:"id" json:"id"`
	ChildCode  string `db:"child_code" json:"childCode"`
	ParentCode string `db:"parent_code" json:"parentCode"`
	Level      int    `db:"level" json:"level"`
}

// Validate checks edge invariants.
func (h *HierarchyEdge) Validate(ctx context.Context) error {
	if h.ChildCode == "" {
		return apperror.NewValidation("child code is required").WithDetail("field", "childCode")
	}
	if h.ParentCode == "" {
		return apperror.NewValidation("parent code is required").WithDetail("field", "parentCode")
	}
	if h.ChildCode == h.ParentCode {
		return apperror.NewValidation("account cannot be its own parent").
			WithDetail("code", h.ChildCode)
	}
	if h.Level < 0 {
		return apperror.NewValidation("level must not be negative").WithDetail("field", "level")
	}
	return nil
}

// Placement is a resolved hierarchy position for an account code.
// Both fields are nil for root accounts (no edge present).
type Placement struct {
	ParentCode *string `json:"parentCode,omitempty"`
	Level      *int    `json:"level,omitempty"`
}

// HierarchyResolver answers parent/level lookups from an edge set loaded
// once per request. When duplicate edges exist in the input (legacy data),
// the first one wins deterministically.
type HierarchyResolver struct {
	byChild map[string]HierarchyEdge
}

// NewHierarchyResolver builds a resolver over the given edges.
func NewHierarchyResolver(edges []HierarchyEdge) *HierarchyResolver {
	byChild := make(map[string]HierarchyEdge, len(edges))
	for _, e := range edges {
		if _, seen := byChild[e.ChildCode]; !seen {
			byChild[e.ChildCode] = e
		}
	}
	return &HierarchyResolver{byChild: byChild}
}

// Resolve returns the placement for an account code. Codes without an edge
// are roots: both parent code and level are absent.
func (r *HierarchyResolver) Resolve(code string) Placement {
	e, ok := r.byChild[code]
	if !ok {
		return Placement{}
	}
	parent := e.ParentCode
	level := e.Level
	return Placement{ParentCode: &parent, Level: &level}
}
