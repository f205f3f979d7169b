package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LookupBarcode queries the external catalogs. Unknown barcodes yield {}.
func (h *Handler) LookupBarcode(c *gin.Context) {
	result, ok := h.lookup.Lookup(c.Request.Context(), c.Param("barcode"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, result)
}
