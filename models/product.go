package models

// PricingRule holds the tiered bulk pricing configuration for a product.
// Prices are in paise; the tier applies based on the aggregate quantity of
// the whole cart, not the single line being edited.
type PricingRule struct {
	BulkThreshold int    `json:"bulk_threshold"`
	BulkPrice     Money  `json:"bulk_price"`
	RegularPrice  Money  `json:"regular_price"`
	BulkLabel     string `json:"bulk_label,omitempty"`
	RegularLabel  string `json:"regular_label,omitempty"`
}

type ProductVariant struct {
	Color         string `json:"color"`
	Size          string `json:"size"`
	StockQuantity int    `json:"stock_quantity"`
	SKU           string `json:"sku,omitempty"`
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	BasePrice   Money            `json:"base_price"`
	BulkPrice   Money            `json:"bulk_price"`
	GSM         string           `json:"gsm,omitempty"`
	Material    string           `json:"material,omitempty"`
	Variants    []ProductVariant `json:"variants"`
	Images      []string         `json:"images"`
	Pricing     PricingRule      `json:"pricing"`
	IsActive    bool             `json:"is_active"`
}

// ProductBrief is the subset of product data the cart engine needs to reprice
// lines: the display name and the pricing tiers.
type ProductBrief struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Pricing PricingRule `json:"pricing"`
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// SizeChartCell annotates one (color, size) cell of the grid with live stock.
// Disabled mirrors the out-of-stock input state: a cell with zero stock is
// not merely clamped to zero, its input is switched off entirely.
type SizeChartCell struct {
	Color         string `json:"color"`
	Size          string `json:"size"`
	StockQuantity int    `json:"stock_quantity"`
	Status        string `json:"status"`
	Disabled      bool   `json:"disabled"`
}

type SizeChart struct {
	ProductID string          `json:"product_id"`
	ChartCode string          `json:"chart_code,omitempty"`
	Colors    []string        `json:"colors"`
	Sizes     []string        `json:"sizes"`
	Pricing   PricingRule     `json:"pricing"`
	Cells     []SizeChartCell `json:"cells,omitempty"`
}

// Stock status buckets used across the size chart and the stock endpoint.
const (
	StockStatusIn  = "in_stock"
	StockStatusLow = "low_stock"
	StockStatusOut = "out_of_stock"
)

const lowStockCutoff = 10

// StockStatus classifies an available quantity into a status bucket.
func StockStatus(quantity int) string {
	switch {
	case quantity <= 0:
		return StockStatusOut
	case quantity <= lowStockCutoff:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
