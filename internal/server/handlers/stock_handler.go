package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/server/middleware"
	"github.com/dilshanuk/salespoint/internal/service/inventory"
)

// StockHandler exposes the stock catalogue.
type StockHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc *inventory.Service, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

// List returns stock items, filtered by the q query when present. The same
// contract serves the admin list and the barcode-first POS search.
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}

// Get returns a single stock item.
func (h *StockHandler) Get(c *gin.Context) {
	stock, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// Create adds a new stock item.
func (h *StockHandler) Create(c *gin.Context) {
	var req inventory.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	stock, err := h.svc.Create(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, stock)
}

// Update applies a partial update to a stock item.
func (h *StockHandler) Update(c *gin.Context) {
	var req models.StockUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	stock, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stock)
}

// Delete removes a stock item.
func (h *StockHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock item removed"})
}
