package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListProducts returns the whole inventory
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, "ListProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// SearchProducts matches ?q= against barcodes and names
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, "SearchProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// AddProduct creates or updates a product from a JSON body or a multipart
// form. A form may carry an "image" file which is stored in the upload dir.
func (h *Handler) AddProduct(c *gin.Context) {
	var fields map[string]interface{}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
			return
		}
		fields = make(map[string]interface{}, len(form.Value))
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}

		if _, err := c.FormFile("image"); err == nil {
			imageURL, err := h.saveImage(c)
			if err != nil {
				respondError(c, "AddProduct", err)
				return
			}
			fields["image_url"] = imageURL
		}
	} else if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	products, err := h.service.AddProduct(c.Request.Context(), fields)
	if err != nil {
		respondError(c, "AddProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "inventory": products})
}

func (h *Handler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return "/uploads/" + name, nil
}

// ListCategories returns distinct product categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, "ListCategories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
