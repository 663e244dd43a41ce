package controllers

import (
	"github.com/gin-gonic/gin"

	"tshirt-store/models"
	"tshirt-store/repositories"
	"tshirt-store/services"
)

type CheckoutController struct {
	sessions *services.SessionManager
	orders   *repositories.OrderRepository
}

func NewCheckoutController(sessions *services.SessionManager, orders *repositories.OrderRepository) *CheckoutController {
	return &CheckoutController{sessions: sessions, orders: orders}
}

// @Summary Calculate order totals
// @Description Get the authoritative checkout breakdown (subtotal, tax, shipping) for the current cart
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/calculate [post]
func (ctrl *CheckoutController) CalculateOrder(c *gin.Context) {
	sessionID := c.GetString("session_id")
	engine := ctrl.sessions.Engine(sessionID)

	cart := engine.Snapshot()
	if len(cart.Items) == 0 {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "Cart is empty",
		})
		return
	}

	summary, err := ctrl.orders.Calculate(c.Request.Context(), sessionID, cart.Items)
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Failed to calculate order",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Order calculated", Data: summary})
}

// @Summary Checkout
// @Description Flush pending cart syncs, place the order upstream and clear the local cart
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CheckoutRequest true "Contact and shipping details"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 504 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	sessionID := c.GetString("session_id")
	engine := ctrl.sessions.Engine(sessionID)

	cart := engine.Snapshot()
	if len(cart.Items) == 0 {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "Cart is empty",
		})
		return
	}

	// The order must be placed against a settled cart, never a half-synced one.
	if !engine.Flush(c.Request.Context()) {
		c.JSON(504, models.ErrorResponse{
			Success: false,
			Message: "Cart sync did not finish, please retry",
		})
		return
	}
	cart = engine.Snapshot()
	if len(cart.Items) == 0 {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "Cart is empty",
		})
		return
	}

	confirmation, err := ctrl.orders.Create(c.Request.Context(), sessionID, req, cart.Items)
	if err != nil {
		c.JSON(upstreamStatus(err), models.ErrorResponse{
			Success: false,
			Message: "Failed to place order",
			Error:   err.Error(),
		})
		return
	}
	confirmation.Items = cart.Items
	engine.Clear()

	c.JSON(201, models.Response{Success: true, Message: "Order placed", Data: confirmation})
}
