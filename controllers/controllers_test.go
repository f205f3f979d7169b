package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barcode-inventory/history"
	"barcode-inventory/lookup"
	"barcode-inventory/models"
	"barcode-inventory/service"
	"barcode-inventory/store"
)

type testEnv struct {
	router    *gin.Engine
	inventory *store.InventoryStore
	uploadDir string
}

func newTestEnv(t *testing.T, products []models.Product, catalog *httptest.Server) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	inventory := store.NewInventoryStore(filepath.Join(dir, "inventory.csv"))
	if products != nil {
		require.NoError(t, inventory.Save(products))
	}
	svc := service.NewInventoryService(
		inventory,
		store.NewOrderStore(filepath.Join(dir, "orders.csv")),
		history.NewFileLog(filepath.Join(dir, "stock_history.csv")),
		nil,
	)

	catalogURL := "http://127.0.0.1:1"
	if catalog != nil {
		catalogURL = catalog.URL
	}
	lookupClient := lookup.NewDefaultClient(catalogURL, catalogURL, time.Second, nil)

	uploadDir := filepath.Join(dir, "uploads")
	h := NewHandler(svc, lookupClient, uploadDir)

	router := gin.New()
	router.GET("/inventory/count", h.ListProducts)
	router.GET("/inventory/search", h.SearchProducts)
	router.POST("/inventory/add", h.AddProduct)
	router.GET("/inventory/categories", h.ListCategories)
	router.GET("/inventory/alerts", h.GetAlerts)
	router.POST("/inventory/order", h.PlaceOrder)
	router.POST("/inventory/sync", h.SyncProduct)
	router.POST("/inventory/adjust-stock", h.AdjustStock)
	router.GET("/inventory/stock-history", h.GetStockHistory)
	router.POST("/inventory/log-scan", h.LogScan)
	router.GET("/api/barcode/:barcode", h.LookupBarcode)
	router.POST("/analyze", h.Analyze)
	router.GET("/sample", h.Sample)

	return &testEnv{router: router, inventory: inventory, uploadDir: uploadDir}
}

func (e *testEnv) do(method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, path, "application/json", []byte(body))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestAdjustStockEndpoint(t *testing.T) {
	env := newTestEnv(t, []models.Product{{Barcode: "111", Quantity: 3}}, nil)

	w := env.postJSON("/inventory/adjust-stock", `{"barcode":"111","adjustment":-10}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status      string `json:"status"`
		NewQuantity int    `json:"new_quantity"`
		Message     string `json:"message"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 0, resp.NewQuantity)
	assert.Equal(t, "Stock updated to 0", resp.Message)

	w = env.do(http.MethodGet, "/inventory/stock-history?barcode=111", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var points []models.StockPoint
	decode(t, w, &points)
	require.Len(t, points, 1)
	assert.Equal(t, 0, points[0].Quantity)
}

func TestAdjustStockEndpointErrors(t *testing.T) {
	env := newTestEnv(t, []models.Product{{Barcode: "111", Quantity: 3}}, nil)

	w := env.postJSON("/inventory/adjust-stock", `{"barcode":"999","adjustment":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = env.postJSON("/inventory/adjust-stock", `{"adjustment":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.postJSON("/inventory/adjust-stock", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHistoryRequiresBarcode(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodGet, "/inventory/stock-history", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHistoryEmptyIsArray(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodGet, "/inventory/stock-history?barcode=none", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAddProductJSON(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.postJSON("/inventory/add", `{"barcode":"000111222333","name":"Test","quantity":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status    string           `json:"status"`
		Inventory []models.Product `json:"inventory"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Inventory, 1)
	assert.Equal(t, models.Product{Barcode: "000111222333", Name: "Test", Quantity: 5}, resp.Inventory[0])

	w = env.postJSON("/inventory/add", `{"barcode":"000111222333","quantity":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddProductRejectsNonFiniteNumbers(t *testing.T) {
	env := newTestEnv(t, []models.Product{{Barcode: "42", Price: 2}}, nil)

	w := env.postJSON("/inventory/add", `{"barcode":"42","price":"NaN","cost":"Inf"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/inventory/count", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	decode(t, w, &products)
	assert.Equal(t, []models.Product{{Barcode: "42", Price: 2}}, products)
}

func TestAddProductMultipartWithImage(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("barcode", "42"))
	require.NoError(t, mw.WriteField("name", "Jam"))
	require.NoError(t, mw.WriteField("price", "3.25"))
	part, err := mw.CreateFormFile("image", "Jam.PNG")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := env.do(http.MethodPost, "/inventory/add", mw.FormDataContentType(), body.Bytes())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	products, err := env.inventory.Load()
	require.NoError(t, err)
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, "42", p.Barcode)
	assert.Equal(t, "Jam", p.Name)
	assert.Equal(t, 3.25, p.Price)
	require.True(t, strings.HasPrefix(p.ImageURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(p.ImageURL, ".png"))

	saved, err := os.ReadFile(filepath.Join(env.uploadDir, strings.TrimPrefix(p.ImageURL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "fake png", string(saved))
}

func TestSearchAndCountEndpoints(t *testing.T) {
	env := newTestEnv(t, []models.Product{
		{Barcode: "123", Name: "Apple", Category: "Fruit"},
		{Barcode: "456", Name: "Grape", Category: "Fruit"},
	}, nil)

	w := env.do(http.MethodGet, "/inventory/search?q=gra", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []models.Product
	decode(t, w, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "456", found[0].Barcode)

	w = env.do(http.MethodGet, "/inventory/search", "", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(http.MethodGet, "/inventory/count", "", nil)
	var all []models.Product
	decode(t, w, &all)
	assert.Len(t, all, 2)

	w = env.do(http.MethodGet, "/inventory/categories", "", nil)
	assert.JSONEq(t, `["Fruit"]`, w.Body.String())
}

func TestAlertsEndpointEmptyLists(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodGet, "/inventory/alerts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"expiry":[],"understock":[],"overstock":[]}`, w.Body.String())
}

func TestSyncEndpoint(t *testing.T) {
	env := newTestEnv(t, []models.Product{{Barcode: "9"}}, nil)

	w := env.postJSON("/inventory/sync", `{"barcode":"9"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"synced","barcode":"9"}`, w.Body.String())

	w = env.postJSON("/inventory/sync", `{"barcode":"10"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSyncEndpointEchoesStoredBarcode(t *testing.T) {
	env := newTestEnv(t, []models.Product{{Barcode: "Ab1"}}, nil)

	w := env.postJSON("/inventory/sync", `{"barcode":"  aB1 "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"synced","barcode":"Ab1"}`, w.Body.String())
}

func TestOrderEndpoint(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.postJSON("/inventory/order", `{"barcode":"9","quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string       `json:"status"`
		Order  models.Order `json:"order"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "9", resp.Order.Barcode)
	assert.Equal(t, 3, resp.Order.Quantity)
	assert.Equal(t, models.OrderStatusPlaced, resp.Order.Status)
	assert.NotEmpty(t, resp.Order.OrderID)
}

func TestLogScanEndpoint(t *testing.T) {
	env := newTestEnv(t, []models.Product{{Barcode: "7", Quantity: 11}}, nil)

	w := env.postJSON("/inventory/log-scan", `{"barcode":"7","current_qty":9}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string                   `json:"status"`
		Entry  models.StockHistoryEntry `json:"entry"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "logged", resp.Status)
	assert.Equal(t, 9, resp.Entry.Quantity)
}

func TestLookupEndpoint(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v0/product/123") {
			w.Write([]byte(`{"status":1,"product":{"product_name":"Oat Milk","brands":"Oatly"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer catalog.Close()
	env := newTestEnv(t, nil, catalog)

	w := env.do(http.MethodGet, "/api/barcode/123", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"barcode":"123","name":"Oat Milk","brand":"Oatly","category":"","image_url":""}`, w.Body.String())

	w = env.do(http.MethodGet, "/api/barcode/999", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestAnalyzeEndpoint(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	upload := func(filename string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		part.Write([]byte("date,product,quantity\n"))
		require.NoError(t, mw.Close())
		return env.do(http.MethodPost, "/analyze", mw.FormDataContentType(), body.Bytes())
	}

	w := upload("sales.csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"top_product":"Widget X"`)

	w = upload("sales.exe")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/analyze", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/sample", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
