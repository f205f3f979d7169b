// models/product.go
package models

// Product is one row of the inventory table, keyed by barcode.
type Product struct {
	Barcode      string  `json:"barcode"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Cost         float64 `json:"cost"`
	Price        float64 `json:"price"`
	Expiry       string  `json:"expiry"` // YYYY-MM-DD, may be empty
	Threshold    int     `json:"threshold"`
	Distributor  string  `json:"distributor"`
	Manufacturer string  `json:"manufacturer"`
	Synced       bool    `json:"synced"`
	ImageURL     string  `json:"image_url"`
	Description  string  `json:"description"`
}

// ProductColumns is the canonical header of the inventory file.
var ProductColumns = []string{
	"barcode", "name", "category", "quantity", "cost", "price", "expiry",
	"threshold", "distributor", "manufacturer", "synced", "image_url", "description",
}
