// Package history keeps the append-only stock history log: one entry per
// adjustment or scan, recording the resulting quantity for a barcode.
package history

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"barcode-inventory/models"
)

// TimestampLayout is fixed width so that entries sort by their string form.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Log is an append-only stock history store.
type Log interface {
	Append(ctx context.Context, entry models.StockHistoryEntry) error
	Query(ctx context.Context, barcode string) ([]models.StockPoint, error)
}

// Timestamp formats t for storage in the log.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// rawEntry is a stored row before the quantity has been validated.
type rawEntry struct {
	Barcode   string `db:"barcode"`
	Timestamp string `db:"timestamp"`
	Quantity  string `db:"quantity"`
}

// collect filters rows for barcode, drops rows whose quantity does not parse
// and sorts the result by timestamp.
func collect(rows []rawEntry, barcode, source string) []models.StockPoint {
	points := make([]models.StockPoint, 0)
	for _, row := range rows {
		if row.Barcode != barcode {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(row.Quantity))
		if err != nil {
			log.Printf("history: skipping %s row for %s at %s: invalid quantity %q", source, row.Barcode, row.Timestamp, row.Quantity)
			continue
		}
		points = append(points, models.StockPoint{Date: row.Timestamp, Quantity: qty})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}
