package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/infrastructure/http/v1/dto"
)

// AccountHandler serves the chart of accounts.
type AccountHandler struct {
	*BaseHandler
	service *ledger.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(base *BaseHandler, service *ledger.AccountService) *AccountHandler {
	return &AccountHandler{BaseHandler: base, service: service}
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	account := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), account); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, account.ID)
}

func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	account, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, account)
}

func (h *AccountHandler) GetByCode(c *gin.Context) {
	account, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, account)
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, accounts)
}

func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	account := &ledger.Account{ID: id}
	req.ApplyTo(account)
	if err := h.service.Update(c.Request.Context(), account); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, account)
}

func (h *AccountHandler) Delete(c *gin.Context) {
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
