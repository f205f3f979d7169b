// models/stock_history.go
package models

// StockHistoryEntry records the quantity of a product after an adjustment or scan.
type StockHistoryEntry struct {
	Barcode   string `json:"barcode"`
	Timestamp string `json:"timestamp"`
	Quantity  int    `json:"quantity"`
}

// StockPoint is a single point of a product's stock history.
type StockPoint struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

type AdjustStockRequest struct {
	Barcode    string `json:"barcode"`
	Adjustment int    `json:"adjustment"`
}

type LogScanRequest struct {
	Barcode    string `json:"barcode"`
	CurrentQty *int   `json:"current_qty"`
}

type SyncRequest struct {
	Barcode string `json:"barcode"`
}
