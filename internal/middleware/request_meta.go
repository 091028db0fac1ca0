package middleware

import (
	"github.com/gin-gonic/gin"

	"elite_market/internal/services"
)

// RequestMeta records the caller's IP and user agent for audit entries.
func RequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := services.WithRequestMeta(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
