package models

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeAmount(t *testing.T) {
	tests := []struct {
		name  string
		typ   PurchaseType
		price string
		want  int64
	}{
		{"physical is listed price", PurchasePhysical, "25.50", 2550},
		{"physical rounds to cent", PurchasePhysical, "19.999", 2000},
		{"digital is forty percent", PurchaseDigital, "25.50", 1020},
		{"digital truncated fraction", PurchaseDigital, "10.01", 400},
		{"digital rounds half up", PurchaseDigital, "3.1125", 125},
		{"digital rounds to nearest cent", PurchaseDigital, "12.34", 494},
		{"subscription ignores price", PurchaseSubscription, "250.00", SubscriptionAmountCents},
		{"subscription on cheap item", PurchaseSubscription, "1.00", SubscriptionAmountCents},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChargeAmount(tt.typ, decimal.RequireFromString(tt.price))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ChargeAmount("gift", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrInvalidPurchaseType)
}

func TestChargeAmountBelowOneCent(t *testing.T) {
	for _, tt := range []struct {
		typ   PurchaseType
		price string
	}{
		{PurchaseDigital, "0.01"},
		{PurchaseDigital, "0.0124"},
		{PurchasePhysical, "0.004"},
		{PurchasePhysical, "0"},
		{PurchasePhysical, "-5"},
	} {
		_, err := ChargeAmount(tt.typ, decimal.RequireFromString(tt.price))
		assert.ErrorIs(t, err, ErrInvalidPrice, "%s %s", tt.typ, tt.price)
	}

	cents, err := ChargeAmount(PurchaseDigital, decimal.RequireFromString("0.0125"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), cents)

	cents, err = ChargeAmount(PurchaseSubscription, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, SubscriptionAmountCents, cents)
}

func TestPurchaseTypeShipping(t *testing.T) {
	assert.True(t, PurchasePhysical.NeedsShipping())
	assert.True(t, PurchaseSubscription.NeedsShipping())
	assert.False(t, PurchaseDigital.NeedsShipping())

	_, err := ParsePurchaseType("bundle")
	assert.ErrorIs(t, err, ErrInvalidPurchaseType)
}

func TestOrderCanTransition(t *testing.T) {
	paidPhysical := Order{Type: PurchasePhysical, Status: OrderStatusPaid}
	assert.NoError(t, paidPhysical.CanTransition(OrderStatusShipped))
	assert.ErrorIs(t, paidPhysical.CanTransition(OrderStatusPaid), ErrInvalidTransition)

	shipped := Order{Type: PurchasePhysical, Status: OrderStatusShipped}
	assert.ErrorIs(t, shipped.CanTransition(OrderStatusShipped), ErrOrderAlreadyShipped)
	assert.ErrorIs(t, shipped.CanTransition(OrderStatusPaid), ErrInvalidTransition)

	digital := Order{Type: PurchaseDigital, Status: OrderStatusPaid}
	assert.ErrorIs(t, digital.CanTransition(OrderStatusShipped), ErrOrderNotShippable)

	sub := Order{Type: PurchaseSubscription, Status: OrderStatusPaid}
	assert.ErrorIs(t, sub.CanTransition(OrderStatusShipped), ErrOrderNotShippable)
}

func TestProductImages(t *testing.T) {
	p := Product{
		ImageURL: "https://cdn/a.png",
		Gallery:  []string{"https://cdn/a.png", "", "https://cdn/b.png"},
	}
	assert.Equal(t, []string{"https://cdn/a.png", "https://cdn/b.png"}, p.Images())
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", m)

	_, err = ParseMonth("March")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	s := Shipment{SubscriberID: "u1", ProductID: gocql.UUID{1}, Month: "2025-03"}
	assert.Equal(t, ShipmentKey{"u1", gocql.UUID{1}, "2025-03"}, s.Key())
}

func TestCategories(t *testing.T) {
	assert.True(t, IsCategory("3D Planters"))
	assert.False(t, IsCategory("Weapons"))
	assert.Equal(t, []string{"SXTOYS 3D", "Anime", "Gadgets"}, FeaturedCategories("España"))
}
