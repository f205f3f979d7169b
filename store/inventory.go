package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"barcode-inventory/models"
)

// InventoryRepository loads and commits whole snapshots of the inventory table.
type InventoryRepository interface {
	Load() ([]models.Product, error)
	Save(products []models.Product) error
}

// InventoryStore persists the inventory table as a CSV file.
type InventoryStore struct {
	path string
}

func NewInventoryStore(path string) *InventoryStore {
	return &InventoryStore{path: path}
}

// Load reads the inventory file. A missing file yields an empty table.
// Numeric and boolean cells that fail to parse default to zero values.
func (s *InventoryStore) Load() ([]models.Product, error) {
	header, rows, _, err := readTable(s.path)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows))
	if header == nil {
		return products, nil
	}

	idx := columnIndex(header)
	for _, row := range rows {
		products = append(products, models.Product{
			Barcode:      cell(row, idx, "barcode"),
			Name:         cell(row, idx, "name"),
			Category:     cell(row, idx, "category"),
			Quantity:     parseIntLenient(cell(row, idx, "quantity")),
			Cost:         parseFloatLenient(cell(row, idx, "cost")),
			Price:        parseFloatLenient(cell(row, idx, "price")),
			Expiry:       cell(row, idx, "expiry"),
			Threshold:    parseIntLenient(cell(row, idx, "threshold")),
			Distributor:  cell(row, idx, "distributor"),
			Manufacturer: cell(row, idx, "manufacturer"),
			Synced:       parseBoolLenient(cell(row, idx, "synced")),
			ImageURL:     cell(row, idx, "image_url"),
			Description:  cell(row, idx, "description"),
		})
	}
	return products, nil
}

// Save overwrites the inventory file with the given table.
func (s *InventoryStore) Save(products []models.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Barcode,
			p.Name,
			p.Category,
			strconv.Itoa(p.Quantity),
			formatFloat(p.Cost),
			formatFloat(p.Price),
			p.Expiry,
			strconv.Itoa(p.Threshold),
			p.Distributor,
			p.Manufacturer,
			formatBool(p.Synced),
			p.ImageURL,
			p.Description,
		})
	}
	if err := writeTable(s.path, models.ProductColumns, rows); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

// FindIndex returns the position of barcode in products using a
// case-insensitive match, or -1.
func FindIndex(products []models.Product, barcode string) int {
	for i := range products {
		if strings.EqualFold(products[i].Barcode, barcode) {
			return i
		}
	}
	return -1
}

// ManualBarcode is the barcode assigned to products added without one.
func ManualBarcode(now time.Time) string {
	return "MANUAL_" + strconv.FormatInt(now.Unix(), 10)
}

// Upsert updates the row matching barcode with the given fields, or appends a
// new row built from defaults. Only fields present in the map are written on
// update. An empty barcode on insert gets a generated MANUAL_ barcode.
func Upsert(products []models.Product, barcode string, fields map[string]interface{}, now time.Time) ([]models.Product, error) {
	barcode = strings.TrimSpace(barcode)

	if barcode != "" {
		if i := FindIndex(products, barcode); i >= 0 {
			updated := products[i]
			if err := applyFields(&updated, fields); err != nil {
				return products, err
			}
			products[i] = updated
			return products, nil
		}
	} else {
		barcode = ManualBarcode(now)
	}

	p := models.Product{Barcode: barcode}
	if err := applyFields(&p, fields); err != nil {
		return products, err
	}
	return append(products, p), nil
}

func applyFields(p *models.Product, fields map[string]interface{}) error {
	for key, value := range fields {
		if err := applyField(p, key, value); err != nil {
			return fmt.Errorf("%w: %s: %v", models.ErrValidation, key, err)
		}
	}
	return nil
}

func applyField(p *models.Product, key string, value interface{}) error {
	switch key {
	case "name":
		p.Name = toString(value)
	case "category":
		p.Category = toString(value)
	case "expiry":
		p.Expiry = toString(value)
	case "distributor":
		p.Distributor = toString(value)
	case "manufacturer":
		p.Manufacturer = toString(value)
	case "image_url":
		p.ImageURL = toString(value)
	case "description":
		p.Description = toString(value)
	case "quantity", "threshold":
		n, err := toInt(value)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("must not be negative")
		}
		if key == "quantity" {
			p.Quantity = n
		} else {
			p.Threshold = n
		}
	case "cost", "price":
		f, err := toFloat(value)
		if err != nil {
			return err
		}
		if f < 0 {
			return fmt.Errorf("must not be negative")
		}
		if key == "cost" {
			p.Cost = f
		} else {
			p.Price = f
		}
	case "synced":
		b, err := toBool(value)
		if err != nil {
			return err
		}
		p.Synced = b
	}
	// barcode and unknown keys are ignored
	return nil
}
