package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barcode-inventory/analysis"
)

// Analyze accepts an uploaded data file and returns the sample report.
func (h *Handler) Analyze(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}
	if file.Filename == "" || !analysis.Allowed(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No selected file or unsupported"})
		return
	}

	c.JSON(http.StatusOK, analysis.SampleReport())
}

func (h *Handler) Sample(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.SampleReport())
}
