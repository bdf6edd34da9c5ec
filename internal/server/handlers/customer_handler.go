package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/server/middleware"
	"github.com/dilshanuk/salespoint/internal/service/customers"
)

// CustomerHandler exposes the customer book.
type CustomerHandler struct {
	svc    *customers.Service
	logger *zap.Logger
}

// NewCustomerHandler constructs the HTTP handler adapter.
func NewCustomerHandler(svc *customers.Service, logger *zap.Logger) *CustomerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerHandler{svc: svc, logger: logger}
}

// Create adds a new customer owned by the actor.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customers.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	customer, err := h.svc.Create(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// List returns customers visible to the actor.
func (h *CustomerHandler) List(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	result, err := h.svc.List(c.Request.Context(), principal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns a single customer.
func (h *CustomerHandler) Get(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	customer, err := h.svc.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Update applies a partial update to a customer.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req models.CustomerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	customer, err := h.svc.Update(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Delete removes a customer.
func (h *CustomerHandler) Delete(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	if err := h.svc.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer removed"})
}
