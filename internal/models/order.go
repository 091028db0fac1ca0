package models

import (
	"time"

	"github.com/gocql/gocql"
)

type OrderStatus string

const (
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusShipped OrderStatus = "shipped"
)

type Order struct {
	ID              gocql.UUID   `json:"id"`
	UserID          string       `json:"user_id"`
	ProductID       gocql.UUID   `json:"product_id"`
	Type            PurchaseType `json:"type"`
	Status          OrderStatus  `json:"status"`
	ShippingCompany string       `json:"shipping_company,omitempty"`
	TrackingCode    string       `json:"tracking_code,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// CanTransition is the whole order state machine: paid -> shipped, physical only.
func (o Order) CanTransition(to OrderStatus) error {
	if to != OrderStatusShipped {
		return ErrInvalidTransition
	}
	if o.Type != PurchasePhysical {
		return ErrOrderNotShippable
	}
	if o.Status == OrderStatusShipped {
		return ErrOrderAlreadyShipped
	}
	if o.Status != OrderStatusPaid {
		return ErrInvalidTransition
	}
	return nil
}

// OrderWithProduct is an order joined with the listing it was bought from.
type OrderWithProduct struct {
	Order
	Product *Product `json:"product,omitempty"`
}
