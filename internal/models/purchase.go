package models

import (
	"github.com/shopspring/decimal"
)

// PurchaseType is what a buyer picks on a listing.
type PurchaseType string

const (
	PurchasePhysical     PurchaseType = "physical"
	PurchaseDigital      PurchaseType = "digital"
	PurchaseSubscription PurchaseType = "subscription"
)

const (
	// SubscriptionAmountCents is the flat monthly box price, independent of the listing price.
	SubscriptionAmountCents int64 = 900
	// IntentKey is the key the pending intent lives under on the buyer side.
	IntentKey = "pendingOrder"
)

var digitalShare = decimal.NewFromFloat(0.4)

func ParsePurchaseType(s string) (PurchaseType, error) {
	switch t := PurchaseType(s); t {
	case PurchasePhysical, PurchaseDigital, PurchaseSubscription:
		return t, nil
	default:
		return "", ErrInvalidPurchaseType
	}
}

func (t PurchaseType) Valid() bool {
	_, err := ParsePurchaseType(string(t))
	return err == nil
}

// NeedsShipping reports whether the purchase ends in a parcel.
func (t PurchaseType) NeedsShipping() bool {
	return t == PurchasePhysical || t == PurchaseSubscription
}

// IsUnitSale is true for one-off sales (everything but the monthly box).
func (t PurchaseType) IsUnitSale() bool {
	return t == PurchasePhysical || t == PurchaseDigital
}

// ChargeAmount returns the amount billed for a listing price, in cents.
// Unit sales that would bill less than one cent fail with ErrInvalidPrice.
func ChargeAmount(t PurchaseType, price decimal.Decimal) (int64, error) {
	var cents int64
	switch t {
	case PurchasePhysical:
		cents = price.Shift(2).Round(0).IntPart()
	case PurchaseDigital:
		cents = price.Mul(digitalShare).Shift(2).Round(0).IntPart()
	case PurchaseSubscription:
		return SubscriptionAmountCents, nil
	default:
		return 0, ErrInvalidPurchaseType
	}
	if cents < 1 {
		return 0, ErrInvalidPrice
	}
	return cents, nil
}

// SaleAmount is ChargeAmount expressed in currency units, for dashboards.
func SaleAmount(t PurchaseType, price decimal.Decimal) decimal.Decimal {
	cents, err := ChargeAmount(t, price)
	if err != nil {
		return decimal.Zero
	}
	return decimal.New(cents, -2)
}

// PendingPurchaseIntent is what the buyer is about to pay for. It lives on the
// buyer's device only and is consumed once when the payment returns.
type PendingPurchaseIntent struct {
	ProductID string       `json:"productId"`
	Type      PurchaseType `json:"type"`
}

func (i PendingPurchaseIntent) Valid() bool {
	return i.ProductID != "" && i.Type.Valid()
}
