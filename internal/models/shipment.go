package models

import (
	"time"

	"github.com/gocql/gocql"
)

const MonthLayout = "2006-01"

// Shipment is one month of a subscription box sent to a subscriber.
type Shipment struct {
	ID              gocql.UUID `json:"id"`
	SubscriberID    string     `json:"subscriber_id"`
	ProductID       gocql.UUID `json:"product_id"`
	Month           string     `json:"month"`
	Content         string     `json:"content"`
	ShippingCompany string     `json:"shipping_company"`
	TrackingCode    string     `json:"tracking_code"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ParseMonth normalises a month label to YYYY-MM.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return t.Format(MonthLayout), nil
}

// ShipmentKey identifies one billing cycle of one subscription.
type ShipmentKey struct {
	SubscriberID string
	ProductID    gocql.UUID
	Month        string
}

func (s Shipment) Key() ShipmentKey {
	return ShipmentKey{SubscriberID: s.SubscriberID, ProductID: s.ProductID, Month: s.Month}
}

// Tracking is what a buyer sees once a parcel left.
type Tracking struct {
	ShippingCompany string `json:"shipping_company"`
	TrackingCode    string `json:"tracking_code"`
}
