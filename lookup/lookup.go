// Package lookup resolves barcodes against public product catalogs.
package lookup

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"barcode-inventory/models"
)

// Source is one external catalog. A nil result with a nil error means the
// catalog does not know the barcode.
type Source interface {
	Name() string
	Lookup(ctx context.Context, barcode string) (*models.LookupResult, error)
}

// Cache stores successful lookups. Implementations report misses with ok=false.
type Cache interface {
	Get(ctx context.Context, barcode string) (*models.LookupResult, bool, error)
	Set(ctx context.Context, result *models.LookupResult) error
}

// Client queries its sources in order and returns the first usable result.
type Client struct {
	sources []Source
	cache   Cache
}

func NewClient(cache Cache, sources ...Source) *Client {
	return &Client{sources: sources, cache: cache}
}

// NewDefaultClient builds the Open Food Facts then UPCitemdb chain sharing one
// http.Client with the given timeout.
func NewDefaultClient(openFoodFactsURL, upcItemDBURL string, timeout time.Duration, cache Cache) *Client {
	httpClient := &http.Client{Timeout: timeout}
	return NewClient(cache,
		NewOpenFoodFacts(openFoodFactsURL, httpClient),
		NewUPCItemDB(upcItemDBURL, httpClient),
	)
}

// Lookup never fails: source and cache errors are logged and the next source
// is tried. ok is false when no source returned a product name.
func (c *Client) Lookup(ctx context.Context, barcode string) (models.LookupResult, bool) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return models.LookupResult{}, false
	}

	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, barcode)
		if err != nil {
			log.Printf("lookup: cache get for %s failed: %v", barcode, err)
		} else if ok {
			return *cached, true
		}
	}

	for _, src := range c.sources {
		result, err := src.Lookup(ctx, barcode)
		if err != nil {
			log.Printf("lookup: %s failed for %s: %v", src.Name(), barcode, err)
			continue
		}
		if result == nil || strings.TrimSpace(result.Name) == "" {
			continue
		}

		if c.cache != nil {
			if err := c.cache.Set(ctx, result); err != nil {
				log.Printf("lookup: cache set for %s failed: %v", barcode, err)
			}
		}
		return *result, true
	}

	return models.LookupResult{}, false
}
