package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"barcode-inventory/models"
)

// AdjustStock adds a signed adjustment to a product's quantity and logs the result.
func (h *Handler) AdjustStock(c *gin.Context) {
	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	newQty, err := h.service.AdjustStock(c.Request.Context(), req.Barcode, req.Adjustment)
	if err != nil {
		respondError(c, "AdjustStock", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"new_quantity": newQty,
		"message":      fmt.Sprintf("Stock updated to %d", newQty),
	})
}

// GetStockHistory returns the logged quantities for ?barcode=, oldest first.
func (h *Handler) GetStockHistory(c *gin.Context) {
	points, err := h.service.StockHistory(c.Request.Context(), c.Query("barcode"))
	if err != nil {
		respondError(c, "GetStockHistory", err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// LogScan records the stock level observed when a product was scanned.
func (h *Handler) LogScan(c *gin.Context) {
	var req models.LogScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	entry, err := h.service.LogScan(c.Request.Context(), req.Barcode, req.CurrentQty)
	if err != nil {
		respondError(c, "LogScan", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged", "entry": entry})
}
