package models

const OrderStatusPlaced = "placed"

type Order struct {
	OrderID   string `json:"order_id"`
	Barcode   string `json:"barcode"`
	Quantity  int    `json:"quantity"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

type CreateOrderRequest struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

// OrderColumns is the header of the orders file.
var OrderColumns = []string{"order_id", "barcode", "quantity", "timestamp", "status"}
