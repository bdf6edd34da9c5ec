package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/server/middleware"
	"github.com/dilshanuk/salespoint/internal/service/orders"
)

// OrderHandler exposes order creation, listing and the status workflow.
type OrderHandler struct {
	svc    *orders.Service
	logger *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter.
func NewOrderHandler(svc *orders.Service, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, logger: logger}
}

// List returns orders visible to the actor, optionally narrowed to one
// calendar day and, for admins, to one representative.
func (h *OrderHandler) List(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	result, err := h.svc.List(c.Request.Context(), principal, c.Query("date"), c.Query("representativeId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns a single order.
func (h *OrderHandler) Get(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	order, err := h.svc.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Create places a new order and commits its stock decrements.
func (h *OrderHandler) Create(c *gin.Context) {
	var req orders.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	order, err := h.svc.Create(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateStatus moves an order to a new workflow state.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	order, err := h.svc.UpdateStatus(c.Request.Context(), principal, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// SummaryStats returns the dashboard aggregates, or a single day's count
// and total value when a date query is given.
func (h *OrderHandler) SummaryStats(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	if date := c.Query("date"); date != "" {
		summary, err := h.svc.Summary(c.Request.Context(), principal, date)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), principal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
