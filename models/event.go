package models

import "time"

const (
	EventStockAdjusted = "stock.adjusted"
	EventStockScanned  = "stock.scanned"
	EventOrderPlaced   = "order.placed"
)

type StockEvent struct {
	Type      string    `json:"type"`
	Barcode   string    `json:"barcode"`
	Quantity  int       `json:"quantity"`
	Delta     int       `json:"delta,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
