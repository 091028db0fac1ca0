package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"

	"elite_market/internal/config"
	"elite_market/internal/models"
)

// Checkout carries what every hosted-session request needs.
type Checkout struct {
	Title         string
	Price         decimal.Decimal
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutRequest is one of PhysicalCheckout, DigitalCheckout or SubscriptionCheckout.
type CheckoutRequest interface {
	PurchaseType() models.PurchaseType
	checkout() Checkout
}

type PhysicalCheckout struct{ Checkout }
type DigitalCheckout struct{ Checkout }
type SubscriptionCheckout struct{ Checkout }

func (PhysicalCheckout) PurchaseType() models.PurchaseType     { return models.PurchasePhysical }
func (DigitalCheckout) PurchaseType() models.PurchaseType      { return models.PurchaseDigital }
func (SubscriptionCheckout) PurchaseType() models.PurchaseType { return models.PurchaseSubscription }

func (r PhysicalCheckout) checkout() Checkout     { return r.Checkout }
func (r DigitalCheckout) checkout() Checkout      { return r.Checkout }
func (r SubscriptionCheckout) checkout() Checkout { return r.Checkout }

func NewCheckoutRequest(t models.PurchaseType, c Checkout) (CheckoutRequest, error) {
	switch t {
	case models.PurchasePhysical:
		return PhysicalCheckout{c}, nil
	case models.PurchaseDigital:
		return DigitalCheckout{c}, nil
	case models.PurchaseSubscription:
		return SubscriptionCheckout{c}, nil
	default:
		return nil, models.ErrInvalidPurchaseType
	}
}

// SessionCreator is the provider call; tests swap it out.
type SessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

type StripeGateway struct {
	cfg    config.Stripe
	create SessionCreator
}

func NewStripeGateway(cfg config.Stripe) *StripeGateway {
	g := &StripeGateway{cfg: cfg}
	if cfg.SecretKey != "" {
		client := session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.SecretKey}
		g.create = client.New
	}
	return g
}

// WithSessionCreator replaces the provider call.
func (g *StripeGateway) WithSessionCreator(fn SessionCreator) *StripeGateway {
	g.create = fn
	return g
}

// CreateSession asks the provider for a hosted page and returns its URL.
func (g *StripeGateway) CreateSession(req CheckoutRequest) (string, error) {
	if g.cfg.SecretKey == "" || g.create == nil {
		return "", models.ErrGatewayNotConfigured
	}

	params, err := g.SessionParams(req)
	if err != nil {
		return "", err
	}

	s, err := g.create(params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) {
			log.Printf("❌ Stripe rejected the session (%s): %s", serr.Code, serr.Msg)
		} else {
			log.Printf("❌ Stripe unreachable: %v", err)
		}
		return "", fmt.Errorf("%w: %v", models.ErrGatewayFailure, err)
	}

	log.Printf("💳 Checkout session %s created (%s)", s.ID, req.PurchaseType())
	return s.URL, nil
}

// SessionParams builds the single-line-item session for a request.
func (g *StripeGateway) SessionParams(req CheckoutRequest) (*stripe.CheckoutSessionParams, error) {
	c := req.checkout()
	amount, err := models.ChargeAmount(req.PurchaseType(), c.Price)
	if err != nil {
		return nil, err
	}

	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String(g.cfg.Currency),
		UnitAmount: stripe.Int64(amount),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(lineItemName(req)),
		},
	}
	if g.cfg.LineItemImage != "" {
		priceData.ProductData.Images = stripe.StringSlice([]string{g.cfg.LineItemImage})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: priceData,
			Quantity:  stripe.Int64(1),
		}},
		SuccessURL: stripe.String(c.SuccessURL),
		CancelURL:  stripe.String(c.CancelURL),
	}
	if c.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(c.CustomerEmail)
	}

	switch req.(type) {
	case SubscriptionCheckout:
		params.Mode = stripe.String(string(stripe.CheckoutSessionModeSubscription))
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		}
		params.ShippingAddressCollection = g.shippingCollection()
	case PhysicalCheckout:
		params.ShippingAddressCollection = g.shippingCollection()
	}
	return params, nil
}

func (g *StripeGateway) shippingCollection() *stripe.CheckoutSessionShippingAddressCollectionParams {
	countries := g.cfg.ShippingCountries
	if len(countries) == 0 {
		countries = models.DefaultShippingCountries
	}
	return &stripe.CheckoutSessionShippingAddressCollectionParams{
		AllowedCountries: stripe.StringSlice(countries),
	}
}

func lineItemName(req CheckoutRequest) string {
	title := req.checkout().Title
	switch req.(type) {
	case PhysicalCheckout:
		return "📦 Physical: " + title
	case DigitalCheckout:
		return "📂 STL file: " + title
	default:
		return "💎 Monthly maker subscription"
	}
}
