package dto

import "ledgerbook/internal/domain/ledger"

// CreateHierarchyEdgeRequest for creating hierarchy edges.
type CreateHierarchyEdgeRequest struct {
	ChildCode  string `json:"childCode" binding:"required"`
	ParentCode string `json:"parentCode" binding:"required"`
	Level      int    `json:"level" binding:"min=0"`
}

// ToEntity converts the request to a domain edge.
func (r CreateHierarchyEdgeRequest) ToEntity() *ledger.HierarchyEdge {
	return &ledger.HierarchyEdge{
		ChildCode:  r.ChildCode,
		ParentCode: r.ParentCode,
		Level:      r.Level,
	}
}

// UpdateHierarchyEdgeRequest for updating hierarchy edges.
type UpdateHierarchyEdgeRequest struct {
	ChildCode  string `json:"childCode" binding:"required"`
	ParentCode string `json:"parentCode" binding:"required"`
	Level      int    `json:"level" binding:"min=0"`
}

// ToEntity converts the request to a domain edge with the given ID.
func (r UpdateHierarchyEdgeRequest) ToEntity(id int64) *ledger.HierarchyEdge {
	return &ledger.HierarchyEdge{
		ID:         id,
		ChildCode:  r.ChildCode,
		ParentCode: r.ParentCode,
		Level:      r.Level,
	}
}
