package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tshirt-store/models"
	"tshirt-store/utils"
)

type SessionController struct{}

// @Summary Create a storefront session
// @Description Create a guest session and return its bearer token
// @Tags Session
// @Produce json
// @Success 201 {object} models.Response
// @Router /session [post]
func (ctrl *SessionController) CreateSession(c *gin.Context) {
	sessionID := uuid.NewString()
	token, err := utils.GenerateSessionToken(sessionID)
	if err != nil {
		c.JSON(500, models.ErrorResponse{
			Success: false,
			Message: "Failed to create session",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(201, models.Response{
		Success: true,
		Message: "Session created",
		Data: models.SessionResponse{
			Token:     token,
			SessionID: sessionID,
		},
	})
}
