package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/infrastructure/http/v1/dto"
)

// PeriodHandler serves accounting periods, including the close operation.
type PeriodHandler struct {
	*BaseHandler
	service *ledger.PeriodService
}

// NewPeriodHandler creates a new period handler.
func NewPeriodHandler(base *BaseHandler, service *ledger.PeriodService) *PeriodHandler {
	return &PeriodHandler{BaseHandler: base, service: service}
}

func (h *PeriodHandler) Create(c *gin.Context) {
	var req dto.CreatePeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	period := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), period); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, period.ID)
}

func (h *PeriodHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	period, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, period)
}

func (h *PeriodHandler) List(c *gin.Context) {
	periods, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, periods)
}

func (h *PeriodHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.UpdatePeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	period := req.ToEntity(id)
	if err := h.service.Update(c.Request.Context(), period); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, period)
}

// Close serves POST /periods/:id/close: invokes the closing routine
// directly. Safe to repeat.
func (h *PeriodHandler) Close(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.service.Close(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: true, Message: "period closed"})
}

func (h *PeriodHandler) Delete(c *gin.Context) {
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
