// Package handlers provides HTTP handlers for API version 1.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ledgerbook/internal/core/apperror"
	"ledgerbook/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates the JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// ParamID parses the :id path parameter.
func (h *BaseHandler) ParamID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, apperror.NewValidation("invalid id parameter").WithDetail("id", c.Param("id")))
		return 0, false
	}
	return id, true
}

// QueryPeriodID parses the required periodId query parameter.
func (h *BaseHandler) QueryPeriodID(c *gin.Context) (int64, bool) {
	raw := c.Query("periodId")
	if raw == "" {
		h.Error(c, apperror.NewValidation("periodId query parameter is required"))
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, apperror.NewValidation("invalid periodId parameter").WithDetail("periodId", raw))
		return 0, false
	}
	return id, true
}

// Error registers the error on the gin context and aborts; the error
// middleware renders the JSON body.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Created sends a 201 response with the new ID.
func (h *BaseHandler) Created(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// OK sends a 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends a 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
