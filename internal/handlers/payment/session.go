package payment

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"elite_market/internal/handlers"
	"elite_market/internal/models"
	"elite_market/internal/services"
)

type createSessionRequest struct {
	Price     decimal.Decimal `json:"price"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	UserEmail string          `json:"user_email"`
}

// HandleCreateSession opens a hosted checkout page for an arbitrary title and
// price. It answers {url} or {error}.
func HandleCreateSession(gateway services.Gateway, urls handlers.ReturnURLs) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.BadRequest(c, err)
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			handlers.RespondError(c, models.ErrMissingField)
			return
		}
		typ, err := models.ParsePurchaseType(req.Type)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		// The monthly box bills a flat amount whatever the price says.
		if _, err := models.ChargeAmount(typ, req.Price); err != nil {
			handlers.RespondError(c, err)
			return
		}

		success, cancel := urls(c)
		checkout, err := services.NewCheckoutRequest(typ, services.Checkout{
			Title:         req.Title,
			Price:         req.Price,
			CustomerEmail: req.UserEmail,
			SuccessURL:    success,
			CancelURL:     cancel,
		})
		if err != nil {
			handlers.RespondError(c, err)
			return
		}

		url, err := gateway.CreateSession(checkout)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
