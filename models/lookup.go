package models

// LookupResult is a product as described by an external barcode catalog.
type LookupResult struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}
