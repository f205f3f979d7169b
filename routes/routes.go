package routes

import (
	"github.com/gin-gonic/gin"

	"barcode-inventory/controllers"
)

func RegisterRoutes(router *gin.Engine, h *controllers.Handler) {
	inventory := router.Group("/inventory")
	{
		inventory.GET("/count", h.ListProducts)
		inventory.GET("/search", h.SearchProducts)
		inventory.POST("/add", h.AddProduct)
		inventory.GET("/categories", h.ListCategories)
		inventory.GET("/alerts", h.GetAlerts)
		inventory.POST("/order", h.PlaceOrder)
		inventory.POST("/sync", h.SyncProduct)

		// Stock routes
		inventory.POST("/adjust-stock", h.AdjustStock)
		inventory.GET("/stock-history", h.GetStockHistory)
		inventory.POST("/log-scan", h.LogScan)
	}

	router.GET("/api/barcode/:barcode", h.LookupBarcode)
	router.POST("/analyze", h.Analyze)
	router.GET("/sample", h.Sample)
	router.GET("/health", h.HealthCheck)
}
