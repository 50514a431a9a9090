package handler

import (
	"net/http"

	"ugandapi-chat/internal/services"
	"ugandapi-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues bearer tokens for verified credentials.
type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Token exchanges form-encoded credentials for a signed bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req httpdto.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("Invalid Username or Password"))
		return
	}

	token, err := h.service.Issue(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse("Invalid Username or Password"))
		return
	}

	c.JSON(http.StatusOK, httpdto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
