package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"elite_market/internal/services"
	"elite_market/internal/utils"
)

const (
	AuthCookie = "auth_token"
	LoginURL   = "/auth/login?provider=google"

	ctxUserID = "user_id"
	ctxEmail  = "email"
)

// AuthRequired rejects requests without a valid token.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, secret) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "login required",
				"code":      "unauthorized",
				"login_url": LoginURL,
			})
			return
		}
		c.Next()
	}
}

// AuthOptional identifies the caller when it can and lets everyone through.
func AuthOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, secret)
		c.Next()
	}
}

func authenticate(c *gin.Context, secret string) bool {
	raw := bearerToken(c)
	if raw == "" {
		return false
	}

	claims, err := utils.ParseJWT(secret, raw)
	if err != nil {
		log.Printf("❌ Rejected token: %v", err)
		return false
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	return true
}

// bearerToken reads the Authorization header first, then the auth cookie.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AuthCookie); err == nil {
		return cookie
	}
	return ""
}

// CurrentBuyer returns the authenticated caller, or nil.
func CurrentBuyer(c *gin.Context) *services.Buyer {
	id := c.GetString(ctxUserID)
	if id == "" {
		return nil
	}
	return &services.Buyer{ID: id, Email: c.GetString(ctxEmail)}
}
