package user

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"elite_market/internal/handlers"
	"elite_market/internal/middleware"
	"elite_market/internal/models"
	"elite_market/internal/utils"
)

type OrderSource interface {
	Order(ctx context.Context, userID, rawID string) (*models.OrderWithProduct, error)
}

type ReceiptConfig struct {
	Render   utils.ReceiptRenderer
	SiteURL  string
	Currency string
}

// HandleReceipt prints the PDF receipt of one of the buyer's orders.
func HandleReceipt(orders OrderSource, cfg ReceiptConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyer := middleware.CurrentBuyer(c)
		if buyer == nil {
			handlers.RespondError(c, models.ErrLoginRequired)
			return
		}
		o, err := orders.Order(c.Request.Context(), buyer.ID, c.Param("id"))
		if err != nil {
			handlers.RespondError(c, err)
			return
		}

		receipt := utils.Receipt{
			OrderID:    o.ID.String(),
			Date:       o.CreatedAt.Format("2006-01-02"),
			BuyerEmail: buyer.Email,
			Type:       string(o.Type),
			Currency:   strings.ToUpper(cfg.Currency),
			VerifyURL:  strings.TrimRight(cfg.SiteURL, "/") + "/profile?order=" + o.ID.String(),
		}
		if o.Product != nil {
			receipt.Title = o.Product.Title
			receipt.Amount = models.SaleAmount(o.Type, o.Product.Price).StringFixed(2)
		}

		pdf, err := cfg.Render(c.Request.Context(), receipt)
		if err != nil {
			handlers.RespondError(c, fmt.Errorf("render receipt %s: %w", receipt.OrderID, err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, receipt.OrderID))
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
