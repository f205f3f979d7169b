// Package analysis backs the upload-and-analyze endpoint. The report is a
// fixed sample until real analysis is implemented.
package analysis

import (
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]bool{
	"csv": true, "xlsx": true, "xls": true, "json": true, "tsv": true,
	"pdf": true, "png": true, "jpg": true, "jpeg": true, "gif": true,
}

// Allowed reports whether filename has a supported extension.
func Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ext != "" && allowedExtensions[ext]
}

type KPIs struct {
	TotalSales     float64 `json:"total_sales"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	ConversionRate float64 `json:"conversion_rate"`
	TopProduct     string  `json:"top_product"`
}

type Charts struct {
	SalesTrend           string `json:"sales_trend"`
	CategoryDistribution string `json:"category_distribution"`
}

type PreviewRow struct {
	Date     string  `json:"date"`
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Report struct {
	KPIs     KPIs         `json:"kpis"`
	Charts   Charts       `json:"charts"`
	Insights []string     `json:"insights"`
	Preview  []PreviewRow `json:"preview"`
}

// SampleReport returns the placeholder report served for every upload.
func SampleReport() Report {
	return Report{
		KPIs: KPIs{
			TotalSales:     15000,
			AvgOrderValue:  125.50,
			ConversionRate: 3.2,
			TopProduct:     "Widget X",
		},
		Charts: Charts{
			SalesTrend:           "base64_encoded_image_data",
			CategoryDistribution: "base64_encoded_image_data",
		},
		Insights: []string{
			"Sales increased by 15% month-over-month",
			"Category Y shows highest growth potential",
		},
		Preview: []PreviewRow{
			{Date: "2023-01-01", Product: "A", Quantity: 2, Price: 10},
			{Date: "2023-01-02", Product: "B", Quantity: 1, Price: 20},
		},
	}
}
