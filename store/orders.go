package store

import (
	"fmt"
	"strconv"
	"time"

	"barcode-inventory/models"
)

type OrderRepository interface {
	Load() ([]models.Order, error)
	Save(orders []models.Order) error
	Append(order models.Order) (models.Order, error)
}

// OrderStore persists placed orders as a CSV file.
type OrderStore struct {
	path string
}

func NewOrderStore(path string) *OrderStore {
	return &OrderStore{path: path}
}

func (s *OrderStore) Load() ([]models.Order, error) {
	header, rows, _, err := readTable(s.path)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	if header == nil {
		return orders, nil
	}

	idx := columnIndex(header)
	for _, row := range rows {
		orders = append(orders, models.Order{
			OrderID:   cell(row, idx, "order_id"),
			Barcode:   cell(row, idx, "barcode"),
			Quantity:  parseIntLenient(cell(row, idx, "quantity")),
			Timestamp: cell(row, idx, "timestamp"),
			Status:    cell(row, idx, "status"),
		})
	}
	return orders, nil
}

func (s *OrderStore) Save(orders []models.Order) error {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{o.OrderID, o.Barcode, strconv.Itoa(o.Quantity), o.Timestamp, o.Status})
	}
	if err := writeTable(s.path, models.OrderColumns, rows); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	return nil
}

// Append adds one order by rewriting the whole file and returns the order as
// stored. An id already present in the file is bumped to the next free
// millisecond.
func (s *OrderStore) Append(order models.Order) (models.Order, error) {
	orders, err := s.Load()
	if err != nil {
		return models.Order{}, err
	}

	taken := make(map[string]bool, len(orders))
	for _, o := range orders {
		taken[o.OrderID] = true
	}
	if id, err := strconv.ParseInt(order.OrderID, 10, 64); err == nil {
		for taken[order.OrderID] {
			id++
			order.OrderID = strconv.FormatInt(id, 10)
		}
	}

	if err := s.Save(append(orders, order)); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// NewOrder builds a placed order. The id is the creation time in epoch milliseconds.
func NewOrder(barcode string, quantity int, now time.Time) models.Order {
	now = now.UTC()
	return models.Order{
		OrderID:   strconv.FormatInt(now.UnixMilli(), 10),
		Barcode:   barcode,
		Quantity:  quantity,
		Timestamp: now.Format(time.RFC3339),
		Status:    models.OrderStatusPlaced,
	}
}
