// Package alerts derives expiry, understock and overstock signals from an
// inventory snapshot.
package alerts

import (
	"math"
	"time"

	"barcode-inventory/models"
)

// expiryLayouts accepts zero-padded and unpadded month and day.
var expiryLayouts = []string{"2006-01-02", "2006-1-2"}

// OverstockFactor is the multiple of threshold above which a product is overstocked.
const OverstockFactor = 10

// expiryTripwires are the exact day counts that raise an expiry alert.
// Products 5 or 2 days from expiry do not alert.
var expiryTripwires = map[int]bool{7: true, 3: true, 1: true}

// Compute evaluates every product in table order. now is converted to its
// UTC calendar date. Rows with a missing or malformed expiry are only checked
// for stock levels. Stock alerts require a positive threshold.
func Compute(products []models.Product, now time.Time) models.Alerts {
	result := models.Alerts{
		Expiry:     make([]models.ExpiryAlert, 0),
		Understock: make([]models.StockAlert, 0),
		Overstock:  make([]models.StockAlert, 0),
	}

	today := utcDate(now)
	for _, p := range products {
		if days, ok := DaysToExpiry(p.Expiry, today); ok && expiryTripwires[days] {
			result.Expiry = append(result.Expiry, models.ExpiryAlert{Barcode: p.Barcode, DaysToExpiry: days})
		}

		if p.Threshold <= 0 {
			continue
		}
		alert := models.StockAlert{Barcode: p.Barcode, Quantity: p.Quantity, Threshold: p.Threshold}
		if p.Quantity <= p.Threshold {
			result.Understock = append(result.Understock, alert)
		}
		if p.Threshold <= math.MaxInt/OverstockFactor && p.Quantity > p.Threshold*OverstockFactor {
			result.Overstock = append(result.Overstock, alert)
		}
	}
	return result
}

// DaysToExpiry returns whole days from today to a YYYY-MM-DD expiry date.
// Month and day may be written without a leading zero.
func DaysToExpiry(expiry string, today time.Time) (int, bool) {
	for _, layout := range expiryLayouts {
		if exp, err := time.Parse(layout, expiry); err == nil {
			return int(exp.Sub(utcDate(today)).Hours() / 24), true
		}
	}
	return 0, false
}

func utcDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
