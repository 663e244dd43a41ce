package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"tshirt-store/models"
)

type CatalogRepository struct {
	u *Upstream
}

func NewCatalogRepository(u *Upstream) *CatalogRepository {
	return &CatalogRepository{u: u}
}

type wireVariant struct {
	Color         string `json:"color"`
	Size          string `json:"size"`
	StockQuantity int    `json:"stock_quantity"`
	SKU           string `json:"sku"`
}

type wirePricingRule struct {
	BulkThreshold int     `json:"bulk_threshold"`
	BulkPrice     float64 `json:"bulk_price"`
	RegularPrice  float64 `json:"regular_price"`
	BulkLabel     string  `json:"bulk_label"`
	RegularLabel  string  `json:"regular_label"`
}

type wireProduct struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	BasePrice    float64          `json:"base_price"`
	BulkPrice    float64          `json:"bulk_price"`
	GSM          string           `json:"gsm"`
	Material     string           `json:"material"`
	Variants     []wireVariant    `json:"variants"`
	Images       []string         `json:"images"`
	PricingRules *wirePricingRule `json:"pricing_rules"`
	IsActive     bool             `json:"is_active"`
}

type wireCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

const defaultBulkThreshold = 15

func (p wireProduct) toModel() models.Product {
	out := models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		BasePrice:   models.MoneyFromRupees(p.BasePrice),
		BulkPrice:   models.MoneyFromRupees(p.BulkPrice),
		GSM:         p.GSM,
		Material:    p.Material,
		Images:      p.Images,
		IsActive:    p.IsActive,
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, models.ProductVariant{
			Color:         v.Color,
			Size:          v.Size,
			StockQuantity: v.StockQuantity,
			SKU:           v.SKU,
		})
	}
	out.Pricing = models.PricingRule{
		BulkThreshold: defaultBulkThreshold,
		BulkPrice:     out.BulkPrice,
		RegularPrice:  out.BasePrice,
	}
	if p.PricingRules != nil {
		out.Pricing = models.PricingRule{
			BulkThreshold: p.PricingRules.BulkThreshold,
			BulkPrice:     models.MoneyFromRupees(p.PricingRules.BulkPrice),
			RegularPrice:  models.MoneyFromRupees(p.PricingRules.RegularPrice),
			BulkLabel:     p.PricingRules.BulkLabel,
			RegularLabel:  p.PricingRules.RegularLabel,
		}
		if out.Pricing.BulkThreshold <= 0 {
			out.Pricing.BulkThreshold = defaultBulkThreshold
		}
	}
	return out
}

func (r *CatalogRepository) ListProducts(ctx context.Context, category, search string, limit int) ([]models.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var wire []wireProduct
	if err := r.u.doJSON(ctx, "GET", path, "", nil, &wire); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(wire))
	for _, p := range wire {
		products = append(products, p.toModel())
	}
	return products, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var wire wireProduct
	if err := r.u.doJSON(ctx, "GET", "/products/"+url.PathEscape(id), "", nil, &wire); err != nil {
		return models.Product{}, err
	}
	return wire.toModel(), nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var wire []wireCategory
	if err := r.u.doJSON(ctx, "GET", "/categories", "", nil, &wire); err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(wire))
	for _, c := range wire {
		categories = append(categories, models.Category{
			ID:        c.ID,
			Name:      c.Name,
			Color:     c.Color,
			SortOrder: c.SortOrder,
		})
	}
	return categories, nil
}

type wireSizeChart struct {
	Colors    []string `json:"colors"`
	Sizes     []string `json:"sizes"`
	ChartCode string   `json:"chart_code"`
	Pricing   struct {
		Bulk struct {
			Quantity string `json:"quantity"`
			Price    string `json:"price"`
		} `json:"bulk"`
		Regular struct {
			Quantity string `json:"quantity"`
			Price    string `json:"price"`
		} `json:"regular"`
	} `json:"pricing"`
}

// GetSizeChart fetches the grid for a product. The upstream serves tier
// prices as display strings ("279₹") and the threshold only as a label
// ("More than 15pcs"); both are normalized here and nowhere else.
func (r *CatalogRepository) GetSizeChart(ctx context.Context, productID string) (models.SizeChart, error) {
	var wire wireSizeChart
	if err := r.u.doJSON(ctx, "GET", "/products/"+url.PathEscape(productID)+"/sizechart", "", nil, &wire); err != nil {
		return models.SizeChart{}, err
	}

	bulkPrice, err := models.ParseMoney(wire.Pricing.Bulk.Price)
	if err != nil {
		return models.SizeChart{}, fmt.Errorf("size chart bulk price: %w", err)
	}
	regularPrice, err := models.ParseMoney(wire.Pricing.Regular.Price)
	if err != nil {
		return models.SizeChart{}, fmt.Errorf("size chart regular price: %w", err)
	}

	threshold := parseThresholdLabel(wire.Pricing.Bulk.Quantity)
	if threshold <= 0 {
		threshold = defaultBulkThreshold
	}

	return models.SizeChart{
		ProductID: productID,
		ChartCode: wire.ChartCode,
		Colors:    wire.Colors,
		Sizes:     wire.Sizes,
		Pricing: models.PricingRule{
			BulkThreshold: threshold,
			BulkPrice:     bulkPrice,
			RegularPrice:  regularPrice,
			BulkLabel:     wire.Pricing.Bulk.Quantity,
			RegularLabel:  wire.Pricing.Regular.Quantity,
		},
	}, nil
}

// parseThresholdLabel extracts the quantity from labels like
// "More than 15pcs". Returns 0 when the label holds no number.
func parseThresholdLabel(label string) int {
	digits := ""
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits += string(r)
		} else if digits != "" {
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

type wireStock struct {
	Variants map[string]struct {
		StockQuantity int `json:"stock_quantity"`
	} `json:"variants"`
}

// GetStock fetches the per-variant stock map, keyed "{color}-{size}"
// upstream. Colors may themselves contain hyphens or spaces, so the split
// happens at the last hyphen.
func (r *CatalogRepository) GetStock(ctx context.Context, productID string) (map[models.VariantKey]int, error) {
	var wire wireStock
	if err := r.u.doJSON(ctx, "GET", "/products/"+url.PathEscape(productID)+"/stock", "", nil, &wire); err != nil {
		return nil, err
	}

	stock := make(map[models.VariantKey]int, len(wire.Variants))
	for key, v := range wire.Variants {
		idx := strings.LastIndex(key, "-")
		if idx <= 0 || idx == len(key)-1 {
			continue
		}
		stock[models.VariantKey{
			ProductID: productID,
			Color:     key[:idx],
			Size:      key[idx+1:],
		}] = v.StockQuantity
	}
	return stock, nil
}
