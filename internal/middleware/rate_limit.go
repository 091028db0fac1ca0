package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CheckoutMaxRequests = 10
	CheckoutWindow      = time.Minute
	SearchMaxRequests   = 30
	SearchWindow        = time.Minute
)

// Counter is satisfied by *cache.Counter.
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	TTL(ctx context.Context, key string) time.Duration
}

// RateLimit allows max requests per window, per user when authenticated and per
// IP otherwise. A failing counter lets the request through.
func RateLimit(counter Counter, name string, max int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		who := c.GetString(ctxUserID)
		if who == "" {
			who = c.ClientIP()
		}
		key := fmt.Sprintf("%s_requests:%s", name, who)

		requests, err := counter.Increment(ctx, key, window)
		if err != nil {
			log.Printf("⚠️ Rate limit counter unavailable: %v", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", max))
		if requests > max {
			retry := counter.TTL(ctx, key)
			if retry <= 0 {
				retry = window
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests, try again shortly",
				"code":        "rate_limited",
				"retry_after": int(retry.Seconds()),
			})
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max-requests))
		c.Next()
	}
}
