package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/infrastructure/http/v1/dto"
)

// EntryHandler serves journal entries.
type EntryHandler struct {
	*BaseHandler
	service *ledger.EntryService
}

// NewEntryHandler creates a new journal entry handler.
func NewEntryHandler(base *BaseHandler, service *ledger.EntryService) *EntryHandler {
	return &EntryHandler{BaseHandler: base, service: service}
}

func (h *EntryHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry.ID)
}

func (h *EntryHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entry)
}

// ListByPeriod serves GET /periods/:id/entries.
func (h *EntryHandler) ListByPeriod(c *gin.Context) {
	periodID, ok := h.ParamID(c)
	if !ok {
		return
	}

	entries, err := h.service.ListByPeriod(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}

func (h *EntryHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.UpdateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry := req.ToEntity(id)
	if err := h.service.Update(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entry)
}

func (h *EntryHandler) Delete(c *gin.Context) {
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
