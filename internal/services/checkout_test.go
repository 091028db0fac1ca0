package services

import (
	"context"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elite_market/internal/clock"
	"elite_market/internal/models"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func testProduct(owner, country, price string) models.Product {
	return models.Product{
		ID:        gocql.TimeUUID(),
		Title:     "Articulated Dragon",
		Price:     decimal.RequireFromString(price),
		Category:  "Cosplay Props",
		Country:   country,
		OwnerID:   owner,
		ImageURL:  "https://cdn.test/dragon.png",
		CreatedAt: testNow.Add(-time.Hour),
	}
}

// memoryIntent stands in for the buyer's cookie.
type memoryIntent struct {
	intent *models.PendingPurchaseIntent
	saves  int
}

func (m *memoryIntent) persist(in models.PendingPurchaseIntent) error {
	m.saves++
	m.intent = &in
	return nil
}

func (m *memoryIntent) clear() error {
	m.intent = nil
	return nil
}

func TestCheckoutStart(t *testing.T) {
	product := testProduct("seller-1", "Argentina", "20.00")
	buyer := &Buyer{ID: "buyer-1", Email: "buyer@example.com"}

	t.Run("persists intent before opening the session", func(t *testing.T) {
		gw := &fakeGateway{url: "https://pay.test/s/1"}
		svc := NewCheckoutService(newFakeProducts(product), newFakeOrders(), gw, clock.NewFixed(testNow))
		device := &memoryIntent{}

		res, err := svc.Start(context.Background(), StartCheckoutInput{
			ProductID: product.ID.String(),
			Type:      "digital",
			Buyer:     buyer,
		}, device.persist)
		require.NoError(t, err)

		assert.Equal(t, "https://pay.test/s/1", res.URL)
		assert.Equal(t, int64(800), res.AmountCents)
		require.NotNil(t, device.intent)
		assert.Equal(t, models.PendingPurchaseIntent{ProductID: product.ID.String(), Type: models.PurchaseDigital}, *device.intent)

		require.Len(t, gw.requests, 1)
		assert.IsType(t, DigitalCheckout{}, gw.requests[0])
	})

	t.Run("gateway failure keeps the saved intent", func(t *testing.T) {
		gw := &fakeGateway{err: models.ErrGatewayFailure}
		svc := NewCheckoutService(newFakeProducts(product), newFakeOrders(), gw, clock.NewFixed(testNow))
		device := &memoryIntent{}

		_, err := svc.Start(context.Background(), StartCheckoutInput{
			ProductID: product.ID.String(),
			Type:      "physical",
			Buyer:     buyer,
		}, device.persist)
		assert.ErrorIs(t, err, models.ErrGatewayFailure)
		assert.NotNil(t, device.intent)
	})

	t.Run("rejections before any intent is written", func(t *testing.T) {
		tests := []struct {
			name    string
			in      StartCheckoutInput
			wantErr error
		}{
			{"anonymous buyer", StartCheckoutInput{ProductID: product.ID.String(), Type: "physical"}, models.ErrLoginRequired},
			{"unknown type", StartCheckoutInput{ProductID: product.ID.String(), Type: "gift", Buyer: buyer}, models.ErrInvalidPurchaseType},
			{"malformed id", StartCheckoutInput{ProductID: "nope", Type: "physical", Buyer: buyer}, models.ErrInvalidID},
			{"missing product", StartCheckoutInput{ProductID: gocql.TimeUUID().String(), Type: "physical", Buyer: buyer}, models.ErrProductNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				gw := &fakeGateway{url: "x"}
				svc := NewCheckoutService(newFakeProducts(product), newFakeOrders(), gw, clock.NewFixed(testNow))
				device := &memoryIntent{}

				_, err := svc.Start(context.Background(), tt.in, device.persist)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, device.saves)
				assert.Empty(t, gw.requests)
			})
		}
	})
}

func TestCheckoutComplete(t *testing.T) {
	product := testProduct("seller-1", "Argentina", "20.00")
	buyer := &Buyer{ID: "buyer-1", Email: "buyer@example.com"}

	t.Run("exactly one order per intent", func(t *testing.T) {
		orders := newFakeOrders()
		notifier := &fakeNotifier{}
		audit := &fakeAudit{}
		svc := NewCheckoutService(newFakeProducts(product), orders, &fakeGateway{}, clock.NewFixed(testNow)).
			WithNotifier(notifier).
			WithAudit(audit)
		device := &memoryIntent{intent: &models.PendingPurchaseIntent{ProductID: product.ID.String(), Type: models.PurchasePhysical}}

		res, err := svc.Complete(context.Background(), CompleteCheckoutInput{Success: true, Buyer: buyer, Intent: device.intent}, device.clear)
		require.NoError(t, err)
		require.True(t, res.Created)
		assert.Equal(t, models.OrderStatusPaid, res.Order.Status)
		assert.Equal(t, models.PurchasePhysical, res.Order.Type)
		assert.Equal(t, "buyer-1", res.Order.UserID)
		assert.Equal(t, product.ID, res.Order.ProductID)
		assert.Equal(t, testNow, res.Order.CreatedAt)
		assert.Nil(t, device.intent)
		assert.Equal(t, 1, orders.count())

		replay, err := svc.Complete(context.Background(), CompleteCheckoutInput{Success: true, Buyer: buyer, Intent: device.intent}, device.clear)
		require.NoError(t, err)
		assert.False(t, replay.Created)
		assert.Equal(t, 1, orders.count())

		assert.Equal(t, []sentMail{{kind: "paid", to: "buyer@example.com"}}, notifier.sent)
		require.Len(t, audit.entries, 1)
		assert.Equal(t, models.ActionOrderCreate, audit.entries[0].Action)
	})

	t.Run("replay with the intent still present duplicates the order", func(t *testing.T) {
		orders := newFakeOrders()
		svc := NewCheckoutService(newFakeProducts(product), orders, &fakeGateway{}, clock.NewFixed(testNow))
		intent := &models.PendingPurchaseIntent{ProductID: product.ID.String(), Type: models.PurchaseDigital}
		keep := func() error { return nil }

		for i := 0; i < 2; i++ {
			_, err := svc.Complete(context.Background(), CompleteCheckoutInput{Success: true, Buyer: buyer, Intent: intent}, keep)
			require.NoError(t, err)
		}
		assert.Equal(t, 2, orders.count())
	})

	t.Run("lost intent is silent", func(t *testing.T) {
		orders := newFakeOrders()
		svc := NewCheckoutService(newFakeProducts(product), orders, &fakeGateway{}, clock.NewFixed(testNow))

		res, err := svc.Complete(context.Background(), CompleteCheckoutInput{Success: true, Buyer: buyer}, func() error { return nil })
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Zero(t, orders.count())
	})

	t.Run("anonymous return keeps the intent", func(t *testing.T) {
		orders := newFakeOrders()
		svc := NewCheckoutService(newFakeProducts(product), orders, &fakeGateway{}, clock.NewFixed(testNow))
		device := &memoryIntent{intent: &models.PendingPurchaseIntent{ProductID: product.ID.String(), Type: models.PurchasePhysical}}

		res, err := svc.Complete(context.Background(), CompleteCheckoutInput{Success: true, Intent: device.intent}, device.clear)
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.NotNil(t, device.intent)
		assert.Zero(t, orders.count())
	})

	t.Run("cancelled return does nothing", func(t *testing.T) {
		orders := newFakeOrders()
		svc := NewCheckoutService(newFakeProducts(product), orders, &fakeGateway{}, clock.NewFixed(testNow))
		device := &memoryIntent{intent: &models.PendingPurchaseIntent{ProductID: product.ID.String(), Type: models.PurchasePhysical}}

		res, err := svc.Complete(context.Background(), CompleteCheckoutInput{Success: false, Buyer: buyer, Intent: device.intent}, device.clear)
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.NotNil(t, device.intent)
	})

	t.Run("store failure keeps the intent", func(t *testing.T) {
		orders := newFakeOrders()
		orders.err = errBoom
		svc := NewCheckoutService(newFakeProducts(product), orders, &fakeGateway{}, clock.NewFixed(testNow))
		device := &memoryIntent{intent: &models.PendingPurchaseIntent{ProductID: product.ID.String(), Type: models.PurchasePhysical}}

		_, err := svc.Complete(context.Background(), CompleteCheckoutInput{Success: true, Buyer: buyer, Intent: device.intent}, device.clear)
		assert.ErrorIs(t, err, errBoom)
		assert.NotNil(t, device.intent)
	})

	t.Run("garbled intent is dropped", func(t *testing.T) {
		orders := newFakeOrders()
		svc := NewCheckoutService(newFakeProducts(product), orders, &fakeGateway{}, clock.NewFixed(testNow))
		device := &memoryIntent{intent: &models.PendingPurchaseIntent{ProductID: "not-a-uuid", Type: models.PurchasePhysical}}

		res, err := svc.Complete(context.Background(), CompleteCheckoutInput{Success: true, Buyer: buyer, Intent: device.intent}, device.clear)
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Nil(t, device.intent)
		assert.Zero(t, orders.count())
	})
}
