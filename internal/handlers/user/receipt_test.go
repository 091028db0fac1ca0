package user

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elite_market/internal/middleware"
	"elite_market/internal/models"
	"elite_market/internal/utils"
)

type stubOrders struct {
	order models.OrderWithProduct
}

func (s stubOrders) Order(_ context.Context, userID, rawID string) (*models.OrderWithProduct, error) {
	if rawID != s.order.ID.String() || userID != s.order.UserID {
		return nil, models.ErrOrderNotFound
	}
	o := s.order
	return &o, nil
}

func receiptRouter(orders OrderSource, render utils.ReceiptRenderer) *gin.Engine {
	r := gin.New()
	r.GET("/api/profile/orders/:id/receipt", middleware.AuthRequired(jwtSecret), HandleReceipt(orders, ReceiptConfig{
		Render:   render,
		SiteURL:  "https://elite.example/",
		Currency: "usd",
	}))
	return r
}

func TestReceipt(t *testing.T) {
	order := models.OrderWithProduct{
		Order:   models.Order{ID: gocql.TimeUUID(), UserID: "buyer-1", Type: models.PurchaseDigital},
		Product: &models.Product{Title: "Vase", Price: decimal.RequireFromString("12.50")},
	}
	var printed utils.Receipt
	r := receiptRouter(stubOrders{order}, func(_ context.Context, rc utils.Receipt) ([]byte, error) {
		printed = rc
		return []byte("%PDF-1.4"), nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, request(t, http.MethodGet, "/api/profile/orders/"+order.ID.String()+"/receipt", "", true))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), order.ID.String())
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
	assert.Equal(t, "5.00", printed.Amount)
	assert.Equal(t, "USD", printed.Currency)
	assert.Equal(t, "ana@example.com", printed.BuyerEmail)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, request(t, http.MethodGet, "/api/profile/orders/"+gocql.TimeUUID().String()+"/receipt", "", true))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReceiptRenderFailure(t *testing.T) {
	order := models.OrderWithProduct{Order: models.Order{ID: gocql.TimeUUID(), UserID: "buyer-1", Type: models.PurchasePhysical}}
	r := receiptRouter(stubOrders{order}, func(context.Context, utils.Receipt) ([]byte, error) {
		return nil, errors.New("chrome not found")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, request(t, http.MethodGet, "/api/profile/orders/"+order.ID.String()+"/receipt", "", true))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}
