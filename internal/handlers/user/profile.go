package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"elite_market/internal/handlers"
	"elite_market/internal/middleware"
	"elite_market/internal/models"
	"elite_market/internal/services"
)

type Profiles interface {
	View(ctx context.Context, userID string) (*services.ProfileView, error)
	SetCountry(ctx context.Context, userID, country string) (*models.Profile, error)
}

// HandleProfile answers the buyer's orders and subscription shipments.
func HandleProfile(svc Profiles) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyer := middleware.CurrentBuyer(c)
		if buyer == nil {
			handlers.RespondError(c, models.ErrLoginRequired)
			return
		}
		view, err := svc.View(c.Request.Context(), buyer.ID)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func HandleSetCountry(svc Profiles) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyer := middleware.CurrentBuyer(c)
		if buyer == nil {
			handlers.RespondError(c, models.ErrLoginRequired)
			return
		}
		var req struct {
			Country string `json:"country" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.BadRequest(c, err)
			return
		}

		profile, err := svc.SetCountry(c.Request.Context(), buyer.ID, req.Country)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}
