package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tshirt-store/config"
	"tshirt-store/controllers"
	"tshirt-store/middleware"
	"tshirt-store/repositories"
	"tshirt-store/services"
)

type Deps struct {
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
}

// BuildDeps wires the upstream client, repositories, caches and the
// per-session cart engines into ready controllers. Requires config.LoadConfig
// to have run.
func BuildDeps() (Deps, *services.SessionManager) {
	cfg := config.AppConfig

	upstream := repositories.NewUpstream(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	catalogRepo := repositories.NewCatalogRepository(upstream)
	cartRepo := repositories.NewCartRepository(upstream)
	orderRepo := repositories.NewOrderRepository(upstream)

	catalog := services.NewCatalogService(catalogRepo, cfg.CatalogCacheTTL)
	stock := services.NewStockService(catalogRepo, cfg.StockCacheTTL)

	manager := services.NewSessionManager(func(sessionID string) *services.CartEngine {
		return services.NewCartEngine(sessionID, cartRepo, stock, catalog, services.EngineOptions{
			DebounceWindow: cfg.DebounceWindow,
			SyncTimeout:    cfg.SyncTimeout,
			Refetch:        cfg.CartRefetch,
		})
	}, cfg.SessionIdleTTL, cfg.SessionIdleTTL/2)

	return Deps{
		Products: controllers.NewProductController(catalogRepo, stock),
		Cart:     controllers.NewCartController(manager),
		Checkout: controllers.NewCheckoutController(manager, orderRepo),
	}, manager
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	sessionCtrl := &controllers.SessionController{}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/session", sessionCtrl.CreateSession)
	router.GET("/categories", deps.Products.GetAllCategories)
	router.GET("/products", deps.Products.GetAllProducts)
	router.GET("/products/:id", deps.Products.GetProductByID)
	router.GET("/products/:id/sizechart", deps.Products.GetSizeChart)
	router.GET("/products/:id/stock", deps.Products.GetProductStock)
	router.POST("/products/:id/quote", deps.Products.QuoteSelection)

	session := router.Group("/")
	session.Use(middleware.SessionMiddleware())
	{
		session.GET("/cart", deps.Cart.GetCart)
		session.POST("/cart/items", deps.Cart.AddToCart)
		session.PUT("/cart/items", deps.Cart.UpdateCart)
		session.DELETE("/cart/items/:productId", deps.Cart.RemoveFromCart)
		session.POST("/cart/sync", deps.Cart.SyncCart)
		session.GET("/cart/badge", deps.Cart.GetBadge)

		session.POST("/checkout/calculate", deps.Checkout.CalculateOrder)
		session.POST("/checkout", deps.Checkout.Checkout)
	}
}
