package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barcode-inventory/models"
)

// PlaceOrder records a new order with status "placed"
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "PlaceOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "order": order})
}
