package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barcode-inventory/models"
)

// GetAlerts returns expiry, understock and overstock alerts
func (h *Handler) GetAlerts(c *gin.Context) {
	alerts, err := h.service.Alerts(c.Request.Context())
	if err != nil {
		respondError(c, "GetAlerts", err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// SyncProduct marks a product as synced
func (h *Handler) SyncProduct(c *gin.Context) {
	var req models.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	barcode, err := h.service.MarkSynced(c.Request.Context(), req.Barcode)
	if err != nil {
		respondError(c, "SyncProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "synced", "barcode": barcode})
}
