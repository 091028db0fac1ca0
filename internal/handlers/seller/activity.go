package seller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"elite_market/internal/models"
)

type ActivityLog interface {
	Activity(ctx context.Context, sellerID string, limit int) []models.AuditLog
}

// HandleActivity answers the seller's recent publish and dispatch actions.
func HandleActivity(svc ActivityLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sellerID(c)
		if !ok {
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		logs := svc.Activity(c.Request.Context(), id, limit)
		c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
	}
}
