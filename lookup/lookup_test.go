package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barcode-inventory/models"
)

func jsonServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const offFound = `{"status":1,"product":{"product_name":"Oat Milk","brands":"Oatly","categories":"Drinks","image_front_small_url":"http://img/oat.jpg"}}`
const upcFound = `{"items":[{"title":"Dish Soap","brand":"Acme","category":"Home","images":["http://img/soap.jpg","http://img/2.jpg"]}]}`

func TestLookupPrefersOpenFoodFacts(t *testing.T) {
	var upcHits int32
	off := jsonServer(t, http.StatusOK, offFound, nil)
	upc := jsonServer(t, http.StatusOK, upcFound, &upcHits)

	c := NewDefaultClient(off.URL, upc.URL, time.Second, nil)
	got, ok := c.Lookup(context.Background(), "123")
	require.True(t, ok)
	assert.Equal(t, models.LookupResult{Barcode: "123", Name: "Oat Milk", Brand: "Oatly", Category: "Drinks", ImageURL: "http://img/oat.jpg"}, got)
	assert.Equal(t, int32(0), atomic.LoadInt32(&upcHits))
}

func TestLookupFallsBackToUPCItemDB(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unknown product", http.StatusOK, `{"status":0}`},
		{"blank name", http.StatusOK, `{"status":1,"product":{"product_name":"  "}}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"bad json", http.StatusOK, `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := jsonServer(t, tt.status, tt.body, nil)
			upc := jsonServer(t, http.StatusOK, upcFound, nil)

			got, ok := NewDefaultClient(off.URL, upc.URL, time.Second, nil).Lookup(context.Background(), "456")
			require.True(t, ok)
			assert.Equal(t, models.LookupResult{Barcode: "456", Name: "Dish Soap", Brand: "Acme", Category: "Home", ImageURL: "http://img/soap.jpg"}, got)
		})
	}
}

func TestLookupReturnsEmptyWhenNothingFound(t *testing.T) {
	off := jsonServer(t, http.StatusOK, `{"status":0}`, nil)
	upc := jsonServer(t, http.StatusOK, `{"items":[]}`, nil)

	got, ok := NewDefaultClient(off.URL, upc.URL, time.Second, nil).Lookup(context.Background(), "789")
	assert.False(t, ok)
	assert.Equal(t, models.LookupResult{}, got)
}

func TestLookupTimeoutIsTreatedAsNoResult(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()
	defer close(release)

	got, ok := NewDefaultClient(slow.URL, slow.URL, 50*time.Millisecond, nil).Lookup(context.Background(), "1")
	assert.False(t, ok)
	assert.Equal(t, models.LookupResult{}, got)
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]models.LookupResult
}

func (m *memoryCache) Get(ctx context.Context, barcode string) (*models.LookupResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[barcode]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (m *memoryCache) Set(ctx context.Context, r *models.LookupResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[r.Barcode] = *r
	return nil
}

func TestLookupUsesCache(t *testing.T) {
	var offHits int32
	off := jsonServer(t, http.StatusOK, offFound, &offHits)
	upc := jsonServer(t, http.StatusOK, `{"items":[]}`, nil)
	cache := &memoryCache{items: map[string]models.LookupResult{}}

	c := NewDefaultClient(off.URL, upc.URL, time.Second, cache)
	first, ok := c.Lookup(context.Background(), "123")
	require.True(t, ok)
	second, ok := c.Lookup(context.Background(), "123")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&offHits))
}

func TestLookupDoesNotCacheMisses(t *testing.T) {
	off := jsonServer(t, http.StatusOK, `{"status":0}`, nil)
	upc := jsonServer(t, http.StatusOK, `{"items":[]}`, nil)
	cache := &memoryCache{items: map[string]models.LookupResult{}}

	_, ok := NewDefaultClient(off.URL, upc.URL, time.Second, cache).Lookup(context.Background(), "404")
	assert.False(t, ok)
	assert.Empty(t, cache.items)
}
