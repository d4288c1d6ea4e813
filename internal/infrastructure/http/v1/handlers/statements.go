package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerbook/internal/domain/statements"
)

// StatementsHandler serves the report views. Every report takes a required
// periodId query parameter; an unknown period is a 404.
type StatementsHandler struct {
	*BaseHandler
	service *statements.Service
}

// NewStatementsHandler creates a new statements handler.
func NewStatementsHandler(base *BaseHandler, service *statements.Service) *StatementsHandler {
	return &StatementsHandler{BaseHandler: base, service: service}
}

func (h *StatementsHandler) GeneralLedger(c *gin.Context) {
	periodID, ok := h.QueryPeriodID(c)
	if !ok {
		return
	}
	report, err := h.service.GeneralLedger(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

func (h *StatementsHandler) TrialBalance(c *gin.Context) {
	periodID, ok := h.QueryPeriodID(c)
	if !ok {
		return
	}
	report, err := h.service.TrialBalance(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

func (h *StatementsHandler) IncomeStatement(c *gin.Context) {
	periodID, ok := h.QueryPeriodID(c)
	if !ok {
		return
	}
	report, err := h.service.IncomeStatement(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

func (h *StatementsHandler) BalanceSheet(c *gin.Context) {
	periodID, ok := h.QueryPeriodID(c)
	if !ok {
		return
	}
	report, err := h.service.BalanceSheet(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

func (h *StatementsHandler) Combined(c *gin.Context) {
	periodID, ok := h.QueryPeriodID(c)
	if !ok {
		return
	}
	report, err := h.service.Combined(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

func (h *StatementsHandler) JournalBook(c *gin.Context) {
	periodID, ok := h.QueryPeriodID(c)
	if !ok {
		return
	}
	report, err := h.service.JournalBook(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// PeriodBalances serves GET /periods/:id/balances, the persisted snapshot.
func (h *StatementsHandler) PeriodBalances(c *gin.Context) {
	periodID, ok := h.ParamID(c)
	if !ok {
		return
	}
	rows, err := h.service.PeriodBalances(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}
