package models

import "errors"

var (
	ErrInvalidPurchaseType       = errors.New("invalid purchase type")
	ErrInvalidID                 = errors.New("invalid id")
	ErrInvalidMonth              = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidCategory           = errors.New("unknown category")
	ErrInvalidPrice              = errors.New("price must charge at least one cent")
	ErrMissingField              = errors.New("missing required field")
	ErrMissingImages             = errors.New("at least one image is required")
	ErrProductNotFound           = errors.New("product not found")
	ErrOrderNotFound             = errors.New("order not found")
	ErrProfileNotFound           = errors.New("profile not found")
	ErrLoginRequired             = errors.New("login required")
	ErrInvalidCountry            = errors.New("country not served")
	ErrCountryRequired           = errors.New("country required before listing products")
	ErrNotProductOwner           = errors.New("product belongs to another seller")
	ErrOrderNotShippable         = errors.New("only physical orders are dispatched individually")
	ErrOrderAlreadyShipped       = errors.New("order already shipped")
	ErrInvalidTransition         = errors.New("invalid order status transition")
	ErrNoSubscription            = errors.New("no subscription for this subscriber and product")
	ErrShipmentAlreadyDispatched = errors.New("shipment already dispatched for this month")
	ErrImageStoreUnavailable     = errors.New("image storage is not configured")
	ErrGatewayNotConfigured      = errors.New("Stripe credentials are missing (STRIPE_SECRET_KEY)")
	ErrGatewayFailure            = errors.New("payment gateway failure")
)
