package seller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"elite_market/internal/handlers"
	"elite_market/internal/middleware"
	"elite_market/internal/models"
	"elite_market/internal/services"
)

// Fulfillment is what the seller dashboard needs from the fulfilment service.
type Fulfillment interface {
	Dashboard(ctx context.Context, sellerID, month string) (*services.Dashboard, error)
	DispatchOrder(ctx context.Context, in services.DispatchOrderInput) (*models.Order, error)
	DispatchMonthly(ctx context.Context, in services.DispatchMonthlyInput) (*models.Shipment, error)
}

func sellerID(c *gin.Context) (string, bool) {
	buyer := middleware.CurrentBuyer(c)
	if buyer == nil {
		handlers.RespondError(c, models.ErrLoginRequired)
		return "", false
	}
	return buyer.ID, true
}

// HandleDashboard answers the seller's sales for ?month=YYYY-MM (default: this month).
func HandleDashboard(svc Fulfillment) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sellerID(c)
		if !ok {
			return
		}
		d, err := svc.Dashboard(c.Request.Context(), id, c.Query("month"))
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

type dispatchOrderRequest struct {
	ShippingCompany string `json:"shipping_company"`
	TrackingCode    string `json:"tracking_code"`
}

func HandleDispatchOrder(svc Fulfillment) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sellerID(c)
		if !ok {
			return
		}
		var req dispatchOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.BadRequest(c, err)
			return
		}

		order, err := svc.DispatchOrder(c.Request.Context(), services.DispatchOrderInput{
			SellerID:        id,
			OrderID:         c.Param("id"),
			ShippingCompany: req.ShippingCompany,
			TrackingCode:    req.TrackingCode,
		})
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

type dispatchMonthlyRequest struct {
	SubscriberID    string `json:"subscriber_id"`
	ProductID       string `json:"product_id"`
	Month           string `json:"month"`
	Content         string `json:"content"`
	ShippingCompany string `json:"shipping_company"`
	TrackingCode    string `json:"tracking_code"`
}

func HandleDispatchMonthly(svc Fulfillment) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sellerID(c)
		if !ok {
			return
		}
		var req dispatchMonthlyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.BadRequest(c, err)
			return
		}

		shipment, err := svc.DispatchMonthly(c.Request.Context(), services.DispatchMonthlyInput{
			SellerID:        id,
			SubscriberID:    req.SubscriberID,
			ProductID:       req.ProductID,
			Month:           req.Month,
			Content:         req.Content,
			ShippingCompany: req.ShippingCompany,
			TrackingCode:    req.TrackingCode,
		})
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"shipment": shipment})
	}
}
