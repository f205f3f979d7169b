package models

type ExpiryAlert struct {
	Barcode      string `json:"barcode"`
	DaysToExpiry int    `json:"days_to_expiry"`
}

// StockAlert is used for both understock and overstock signals.
type StockAlert struct {
	Barcode   string `json:"barcode"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

type Alerts struct {
	Expiry     []ExpiryAlert `json:"expiry"`
	Understock []StockAlert  `json:"understock"`
	Overstock  []StockAlert  `json:"overstock"`
}
