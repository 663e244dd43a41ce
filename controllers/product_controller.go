package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tshirt-store/models"
	"tshirt-store/repositories"
	"tshirt-store/services"
)

type ProductController struct {
	catalog *repositories.CatalogRepository
	stock   *services.StockService
}

func NewProductController(catalog *repositories.CatalogRepository, stock *services.StockService) *ProductController {
	return &ProductController{catalog: catalog, stock: stock}
}

func upstreamStatus(err error) int {
	var ue *repositories.UpstreamError
	if errors.As(err, &ue) && ue.StatusCode == 404 {
		return 404
	}
	return 502
}

func getProductCacheKey(category, search string, limit int) string {
	return fmt.Sprintf("products_list_c%s_s%s_l%d", category, search, limit)
}

// @Summary Get all categories
// @Description Get list of all product categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetAllCategories(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "categories_list"

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	categories, err := ctrl.catalog.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Failed to fetch categories",
			Error:   err.Error(),
		})
		return
	}

	response := gin.H{"success": true, "message": "Categories retrieved", "data": categories}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Get all products
// @Description Get products, optionally filtered by category or search term
// @Tags Products
// @Produce json
// @Param category query string false "Filter by category"
// @Param search query string false "Search by product name"
// @Param limit query int false "Maximum number of products" default(50)
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 {
		limit = 50
	}

	ctx := context.Background()
	cacheKey := getProductCacheKey(category, search, limit)

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	products, err := ctrl.catalog.ListProducts(c.Request.Context(), category, search, limit)
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Failed to fetch products",
			Error:   err.Error(),
		})
		return
	}

	response := gin.H{"success": true, "message": "Products retrieved", "data": products}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Get product by ID
// @Description Get a single product with variants and pricing tiers
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Product not found",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Product retrieved", Data: product})
}

// @Summary Get product size chart
// @Description Get the color/size grid with tier pricing and live stock per cell
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/sizechart [get]
func (ctrl *ProductController) GetSizeChart(c *gin.Context) {
	productID := c.Param("id")

	chart, err := ctrl.catalog.GetSizeChart(c.Request.Context(), productID)
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Size chart not found",
			Error:   err.Error(),
		})
		return
	}

	stock, err := ctrl.stock.Snapshot(c.Request.Context(), productID)
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Failed to fetch stock",
			Error:   err.Error(),
		})
		return
	}

	// Annotate every grid cell; zero stock disables the cell's input
	// outright instead of clamping entries to zero.
	for _, color := range chart.Colors {
		for _, size := range chart.Sizes {
			quantity := stock[models.VariantKey{ProductID: productID, Color: color, Size: size}]
			chart.Cells = append(chart.Cells, models.SizeChartCell{
				Color:         color,
				Size:          size,
				StockQuantity: quantity,
				Status:        models.StockStatus(quantity),
				Disabled:      quantity <= 0,
			})
		}
	}

	c.JSON(200, models.Response{Success: true, Message: "Size chart retrieved", Data: chart})
}

// @Summary Get product stock
// @Description Get per-variant stock quantities and status buckets
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/stock [get]
func (ctrl *ProductController) GetProductStock(c *gin.Context) {
	productID := c.Param("id")

	stock, err := ctrl.stock.Snapshot(c.Request.Context(), productID)
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Failed to fetch stock",
			Error:   err.Error(),
		})
		return
	}

	variants := gin.H{}
	for key, quantity := range stock {
		variants[key.Color+"-"+key.Size] = gin.H{
			"stock_quantity": quantity,
			"status":         models.StockStatus(quantity),
		}
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Stock retrieved",
		Data:    gin.H{"product_id": productID, "variants": variants},
	})
}

// @Summary Quote a size-chart selection
// @Description Price a quantities selection against the product's pricing tiers
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.QuoteRequest true "Quantities keyed Color-Size"
// @Success 200 {object} models.Response
// @Router /products/{id}/quote [post]
func (ctrl *ProductController) QuoteSelection(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	product, err := ctrl.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Product not found",
			Error:   err.Error(),
		})
		return
	}

	quote := services.QuoteSelection(req.Quantities, product.Pricing)
	c.JSON(200, models.Response{
		Success: true,
		Message: "Quote calculated",
		Data: models.QuoteResponse{
			TotalQuantity: quote.TotalQuantity,
			IsBulk:        quote.IsBulk,
			PricePerItem:  quote.PricePerItem,
			TotalPrice:    quote.TotalPrice,
			PriceDisplay:  quote.PricePerItem.String(),
			TotalDisplay:  quote.TotalPrice.String(),
		},
	})
}
