package middleware

import (
	"context"
	"net/http"
	"strings"

	"ugandapi-chat/internal/services"
	"ugandapi-chat/internal/transport/httpdto"
	"ugandapi-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		u, err := service.Verify(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("Invalid token"))
			c.Abort()
			return
		}

		ctx := services.WithUserContext(c.Request.Context(), u.Username)
		ctx = context.WithValue(ctx, logger.UsernameKey, u.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
