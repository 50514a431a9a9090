package handler

import (
	"net/http"

	"ugandapi-chat/internal/services"

	"github.com/gin-gonic/gin"
)

// ItemHandler backs the sample protected route used by clients to probe
// whether their token still works.
type ItemHandler struct{}

func NewItemHandler() *ItemHandler {
	return &ItemHandler{}
}

func (h *ItemHandler) Items(c *gin.Context) {
	username, _ := services.UsernameFromContext(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Hello world",
		"username": username,
	})
}
