package controllers

import (
	"github.com/gin-gonic/gin"

	"tshirt-store/models"
	"tshirt-store/services"
)

type CartController struct {
	sessions *services.SessionManager
}

func NewCartController(sessions *services.SessionManager) *CartController {
	return &CartController{sessions: sessions}
}

func (ctrl *CartController) engine(c *gin.Context) (*services.CartEngine, string) {
	sessionID := c.GetString("session_id")
	return ctrl.sessions.Engine(sessionID), sessionID
}

func mutationResponse(c *gin.Context, result services.MutationResult, message string) {
	switch result.Status {
	case services.MutationRejected:
		c.JSON(409, models.ErrorResponse{
			Success:   false,
			Message:   result.Message,
			Available: result.Available,
			Requested: result.Requested,
		})
	case services.MutationNoop:
		c.JSON(200, models.CartResponse{
			Success: true,
			Message: "Nothing to change",
			Data:    result.Cart,
		})
	default:
		c.JSON(200, models.CartResponse{
			Success: true,
			Message: message,
			Data:    result.Cart,
		})
	}
}

// @Summary Get cart
// @Description Get the session's cart snapshot plus any pending reconciliation notices
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CartResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	engine, _ := ctrl.engine(c)
	c.JSON(200, models.CartResponse{
		Success: true,
		Message: "Cart retrieved",
		Data:    engine.Snapshot(),
		Notices: engine.TakeNotices(),
	})
}

// @Summary Add to cart
// @Description Merge a quantity into the cart line for a variant
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddToCartRequest true "Variant and quantity"
// @Success 200 {object} models.CartResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	engine, _ := ctrl.engine(c)
	key := models.VariantKey{ProductID: req.ProductID, Color: req.Color, Size: req.Size}
	result := engine.AddItem(c.Request.Context(), key, req.Quantity, req.Commit)
	mutationResponse(c, result, "Item added to cart")
}

// @Summary Update cart quantity
// @Description Set the absolute quantity for a variant; zero removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateCartRequest true "Variant and quantity"
// @Success 200 {object} models.CartResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [put]
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	var req models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	engine, _ := ctrl.engine(c)
	key := models.VariantKey{ProductID: req.ProductID, Color: req.Color, Size: req.Size}
	result := engine.SetQuantity(c.Request.Context(), key, *req.Quantity, req.Commit)
	mutationResponse(c, result, "Cart updated")
}

// @Summary Remove from cart
// @Description Remove a variant's line from the cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param color query string true "Variant color"
// @Param size query string true "Variant size"
// @Success 200 {object} models.CartResponse
// @Router /cart/items/{productId} [delete]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	key := models.VariantKey{
		ProductID: c.Param("productId"),
		Color:     c.Query("color"),
		Size:      c.Query("size"),
	}
	if key.Color == "" || key.Size == "" {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "color and size query parameters are required",
		})
		return
	}

	engine, _ := ctrl.engine(c)
	result := engine.Remove(c.Request.Context(), key)
	mutationResponse(c, result, "Item removed from cart")
}

// @Summary Sync cart
// @Description Flush pending debounced syncs and wait until the cart is settled
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CartResponse
// @Failure 504 {object} models.ErrorResponse
// @Router /cart/sync [post]
func (ctrl *CartController) SyncCart(c *gin.Context) {
	engine, _ := ctrl.engine(c)
	if !engine.Flush(c.Request.Context()) {
		c.JSON(504, models.ErrorResponse{
			Success: false,
			Message: "Cart sync did not finish, please retry",
		})
		return
	}

	c.JSON(200, models.CartResponse{
		Success: true,
		Message: "Cart synced",
		Data:    engine.Snapshot(),
		Notices: engine.TakeNotices(),
	})
}

// @Summary Get cart badge
// @Description Get the lightweight item/quantity counters for the header badge
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /cart/badge [get]
func (ctrl *CartController) GetBadge(c *gin.Context) {
	sessionID := c.GetString("session_id")
	badge, ok := ctrl.sessions.Badge(sessionID)
	if !ok {
		// session exists but has no cart activity yet
		badge = models.CartBadge{}
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Badge retrieved",
		Data:    badge,
	})
}
