// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"ugandapi-chat/internal/services"
	"ugandapi-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user registration.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a user when the username is allow-listed and unused.
func (h *UserHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request body"))
		return
	}

	u, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.UserResponse{
		UserID:   u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	})
}

func writeError(c *gin.Context, err error) {
	c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error()))
}
