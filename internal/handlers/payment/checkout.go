package payment

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"elite_market/internal/handlers"
	"elite_market/internal/middleware"
	"elite_market/internal/models"
	"elite_market/internal/services"
)

// Checkouts is the part of the checkout service the handlers drive.
type Checkouts interface {
	Start(ctx context.Context, in services.StartCheckoutInput, persist func(models.PendingPurchaseIntent) error) (services.StartCheckoutResult, error)
	Complete(ctx context.Context, in services.CompleteCheckoutInput, clear func() error) (services.CompleteCheckoutResult, error)
}

// IntentStore is satisfied by *intent.Store.
type IntentStore interface {
	Save(w http.ResponseWriter, r *http.Request, in models.PendingPurchaseIntent) error
	Load(r *http.Request) *models.PendingPurchaseIntent
	Clear(w http.ResponseWriter, r *http.Request) error
}

// HandleStartCheckout saves the buyer's intent on the device and answers the
// hosted payment page URL.
func HandleStartCheckout(svc Checkouts, intents IntentStore, urls handlers.ReturnURLs) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Type string `json:"type" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.BadRequest(c, err)
			return
		}

		success, cancel := urls(c)
		res, err := svc.Start(c.Request.Context(), services.StartCheckoutInput{
			ProductID:  c.Param("id"),
			Type:       req.Type,
			Buyer:      middleware.CurrentBuyer(c),
			SuccessURL: success,
			CancelURL:  cancel,
		}, func(in models.PendingPurchaseIntent) error {
			return intents.Save(c.Writer, c.Request, in)
		})
		if err != nil {
			handlers.RespondError(c, err)
			return
		}

		log.Printf("💳 Checkout session opened: %s %s (%d cents)", res.Intent.Type, res.Intent.ProductID, res.AmountCents)
		c.JSON(http.StatusOK, res)
	}
}

// HandleCheckoutReturn reconciles the device's intent once the hosted page
// sends the buyer back.
func HandleCheckoutReturn(svc Checkouts, intents IntentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("canceled") == "true" {
			c.JSON(http.StatusOK, gin.H{"order_created": false, "canceled": true})
			return
		}

		res, err := svc.Complete(c.Request.Context(), services.CompleteCheckoutInput{
			Success: c.Query("success") == "true",
			Buyer:   middleware.CurrentBuyer(c),
			Intent:  intents.Load(c.Request),
		}, func() error {
			return intents.Clear(c.Writer, c.Request)
		})
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
