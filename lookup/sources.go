package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"barcode-inventory/models"
)

type OpenFoodFacts struct {
	baseURL string
	client  *http.Client
}

func NewOpenFoodFacts(baseURL string, client *http.Client) *OpenFoodFacts {
	return &OpenFoodFacts{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *OpenFoodFacts) Name() string { return "openfoodfacts" }

func (s *OpenFoodFacts) Lookup(ctx context.Context, barcode string) (*models.LookupResult, error) {
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, url.PathEscape(barcode))

	var body struct {
		Status  int `json:"status"`
		Product struct {
			ProductName string `json:"product_name"`
			Brands      string `json:"brands"`
			Categories  string `json:"categories"`
			ImageURL    string `json:"image_front_small_url"`
		} `json:"product"`
	}
	if err := getJSON(ctx, s.client, endpoint, &body); err != nil {
		return nil, err
	}
	if body.Status != 1 || strings.TrimSpace(body.Product.ProductName) == "" {
		return nil, nil
	}

	return &models.LookupResult{
		Barcode:  barcode,
		Name:     body.Product.ProductName,
		Brand:    body.Product.Brands,
		Category: body.Product.Categories,
		ImageURL: body.Product.ImageURL,
	}, nil
}

type UPCItemDB struct {
	baseURL string
	client  *http.Client
}

func NewUPCItemDB(baseURL string, client *http.Client) *UPCItemDB {
	return &UPCItemDB{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *UPCItemDB) Name() string { return "upcitemdb" }

func (s *UPCItemDB) Lookup(ctx context.Context, barcode string) (*models.LookupResult, error) {
	endpoint := fmt.Sprintf("%s/prod/trial/lookup?upc=%s", s.baseURL, url.QueryEscape(barcode))

	var body struct {
		Items []struct {
			Title    string   `json:"title"`
			Brand    string   `json:"brand"`
			Category string   `json:"category"`
			Images   []string `json:"images"`
		} `json:"items"`
	}
	if err := getJSON(ctx, s.client, endpoint, &body); err != nil {
		return nil, err
	}
	if len(body.Items) == 0 || strings.TrimSpace(body.Items[0].Title) == "" {
		return nil, nil
	}

	item := body.Items[0]
	result := &models.LookupResult{
		Barcode:  barcode,
		Name:     item.Title,
		Brand:    item.Brand,
		Category: item.Category,
	}
	if len(item.Images) > 0 {
		result.ImageURL = item.Images[0]
	}
	return result, nil
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
