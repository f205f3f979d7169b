package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"barcode-inventory/alerts"
	"barcode-inventory/events"
	"barcode-inventory/history"
	"barcode-inventory/models"
	"barcode-inventory/store"
)

// InventoryService runs every read-modify-write flow against the stores.
// Mutating calls are serialized so two requests in this process cannot
// overwrite each other's snapshot.
type InventoryService struct {
	mu        sync.Mutex
	inventory store.InventoryRepository
	orders    store.OrderRepository
	history   history.Log
	publisher events.Publisher
	now       func() time.Time
}

func NewInventoryService(inventory store.InventoryRepository, orders store.OrderRepository, hist history.Log, publisher events.Publisher) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		orders:    orders,
		history:   hist,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *InventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.inventory.Load()
}

// Search matches q case-insensitively. An all-digit query is first tried as
// an exact barcode; otherwise, or when no barcode matches, products whose
// name contains q are returned.
func (s *InventoryService) Search(ctx context.Context, q string) ([]models.Product, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	results := make([]models.Product, 0)
	if q == "" {
		return results, nil
	}

	products, err := s.inventory.Load()
	if err != nil {
		return nil, err
	}

	if isDigits(q) {
		for _, p := range products {
			if strings.ToLower(p.Barcode) == q {
				results = append(results, p)
			}
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			results = append(results, p)
		}
	}
	return results, nil
}

// AddProduct inserts or updates a product and returns the saved table.
func (s *InventoryService) AddProduct(ctx context.Context, fields map[string]interface{}) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.inventory.Load()
	if err != nil {
		return nil, err
	}

	var barcode string
	switch v := fields["barcode"].(type) {
	case string:
		barcode = v
	case float64:
		// numeric JSON barcodes
		barcode = strconv.FormatFloat(v, 'f', -1, 64)
	}

	products, err = store.Upsert(products, barcode, fields, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.inventory.Save(products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories lists the distinct non-empty categories in alphabetical order.
func (s *InventoryService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.inventory.Load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range products {
		c := strings.TrimSpace(p.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *InventoryService) Alerts(ctx context.Context) (models.Alerts, error) {
	products, err := s.inventory.Load()
	if err != nil {
		return models.Alerts{}, err
	}
	return alerts.Compute(products, s.now()), nil
}

func (s *InventoryService) PlaceOrder(ctx context.Context, req *models.CreateOrderRequest) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.Append(store.NewOrder(strings.TrimSpace(req.Barcode), req.Quantity, s.now()))
	if err != nil {
		return models.Order{}, err
	}

	s.publish(ctx, &models.StockEvent{
		Type:      models.EventOrderPlaced,
		Barcode:   order.Barcode,
		Quantity:  order.Quantity,
		OrderID:   order.OrderID,
		Timestamp: s.now(),
	})
	return order, nil
}

// MarkSynced flags a product as synced and returns its stored barcode.
func (s *InventoryService) MarkSynced(ctx context.Context, barcode string) (string, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return "", fmt.Errorf("%w: barcode is required", models.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.inventory.Load()
	if err != nil {
		return "", err
	}
	i := store.FindIndex(products, barcode)
	if i < 0 {
		return "", fmt.Errorf("product %s: %w", barcode, models.ErrNotFound)
	}
	products[i].Synced = true
	if err := s.inventory.Save(products); err != nil {
		return "", err
	}
	return products[i].Barcode, nil
}

// AdjustStock applies a signed adjustment, clamping the result at zero, and
// records the resulting quantity in the history log. A failed history append
// or event publish is logged; the adjustment itself has already been saved.
func (s *InventoryService) AdjustStock(ctx context.Context, barcode string, adjustment int) (int, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return 0, fmt.Errorf("%w: barcode is required", models.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.inventory.Load()
	if err != nil {
		return 0, err
	}
	i := store.FindIndex(products, barcode)
	if i < 0 {
		return 0, fmt.Errorf("product with barcode %s not found, add it first: %w", barcode, models.ErrNotFound)
	}

	newQty := applyAdjustment(products[i].Quantity, adjustment)
	products[i].Quantity = newQty

	if err := s.inventory.Save(products); err != nil {
		return 0, err
	}

	now := s.now()
	entry := models.StockHistoryEntry{
		Barcode:   products[i].Barcode,
		Timestamp: history.Timestamp(now),
		Quantity:  newQty,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		log.Printf("AdjustStock: stock for %s saved but history append failed: %v", entry.Barcode, err)
	}

	s.publish(ctx, &models.StockEvent{
		Type:      models.EventStockAdjusted,
		Barcode:   entry.Barcode,
		Quantity:  newQty,
		Delta:     adjustment,
		Timestamp: now,
	})
	return newQty, nil
}

func (s *InventoryService) StockHistory(ctx context.Context, barcode string) ([]models.StockPoint, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", models.ErrValidation)
	}
	return s.history.Query(ctx, barcode)
}

// LogScan records a scan event. When qty is nil the product's current
// quantity is logged.
func (s *InventoryService) LogScan(ctx context.Context, barcode string, qty *int) (models.StockHistoryEntry, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return models.StockHistoryEntry{}, fmt.Errorf("%w: barcode is required", models.ErrValidation)
	}

	var quantity int
	if qty != nil {
		if *qty < 0 {
			return models.StockHistoryEntry{}, fmt.Errorf("%w: current_qty must not be negative", models.ErrValidation)
		}
		quantity = *qty
	} else {
		products, err := s.inventory.Load()
		if err != nil {
			return models.StockHistoryEntry{}, err
		}
		i := store.FindIndex(products, barcode)
		if i < 0 {
			return models.StockHistoryEntry{}, fmt.Errorf("product %s: %w", barcode, models.ErrNotFound)
		}
		barcode = products[i].Barcode
		quantity = products[i].Quantity
	}

	now := s.now()
	entry := models.StockHistoryEntry{
		Barcode:   barcode,
		Timestamp: history.Timestamp(now),
		Quantity:  quantity,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return models.StockHistoryEntry{}, err
	}

	s.publish(ctx, &models.StockEvent{
		Type:      models.EventStockScanned,
		Barcode:   barcode,
		Quantity:  quantity,
		Timestamp: now,
	})
	return entry, nil
}

func (s *InventoryService) publish(ctx context.Context, event *models.StockEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStockEvent(ctx, event); err != nil {
		log.Printf("Failed to publish %s event for %s: %v", event.Type, event.Barcode, err)
	}
}

// applyAdjustment adds adjustment to current, saturating at math.MaxInt and
// clamping at zero.
func applyAdjustment(current, adjustment int) int {
	if adjustment > 0 && current > math.MaxInt-adjustment {
		return math.MaxInt
	}
	if adjustment < 0 && current < math.MinInt-adjustment {
		return 0
	}
	n := current + adjustment
	if n < 0 {
		return 0
	}
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
