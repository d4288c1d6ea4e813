package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/infrastructure/http/v1/dto"
)

// HierarchyHandler serves account hierarchy edges.
type HierarchyHandler struct {
	*BaseHandler
	service *ledger.HierarchyService
}

// NewHierarchyHandler creates a new hierarchy handler.
func NewHierarchyHandler(base *BaseHandler, service *ledger.HierarchyService) *HierarchyHandler {
	return &HierarchyHandler{BaseHandler: base, service: service}
}

func (h *HierarchyHandler) Create(c *gin.Context) {
	var req dto.CreateHierarchyEdgeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	edge := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), edge); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, edge.ID)
}

func (h *HierarchyHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	edge, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, edge)
}

func (h *HierarchyHandler) List(c *gin.Context) {
	edges, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, edges)
}

// Resolve serves GET /hierarchy/resolve/:code. Roots return an empty
// placement, not an error.
func (h *HierarchyHandler) Resolve(c *gin.Context) {
	resolver, err := h.service.Resolver(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resolver.Resolve(c.Param("code")))
}

func (h *HierarchyHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.UpdateHierarchyEdgeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	edge := req.ToEntity(id)
	if err := h.service.Update(c.Request.Context(), edge); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, edge)
}

func (h *HierarchyHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
