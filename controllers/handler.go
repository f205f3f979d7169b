package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"barcode-inventory/lookup"
	"barcode-inventory/models"
	"barcode-inventory/service"
)

type Handler struct {
	service   *service.InventoryService
	lookup    *lookup.Client
	uploadDir string
}

func NewHandler(svc *service.InventoryService, lookupClient *lookup.Client, uploadDir string) *Handler {
	return &Handler{service: svc, lookup: lookupClient, uploadDir: uploadDir}
}

// HealthCheck reports that the server is up.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("%s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
