package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gocql/gocql"

	"elite_market/internal/clock"
	"elite_market/internal/models"
)

// CheckoutService turns a buyer's choice into a hosted payment and, once the
// buyer comes back, into a paid order.
type CheckoutService struct {
	products ProductRepository
	orders   OrderRepository
	gateway  Gateway
	notifier Notifier
	audit    auditTrail
	clock    clock.Clock
}

func NewCheckoutService(products ProductRepository, orders OrderRepository, gateway Gateway, clk clock.Clock) *CheckoutService {
	return &CheckoutService{
		products: products,
		orders:   orders,
		gateway:  gateway,
		notifier: noopNotifier{},
		audit:    auditTrail{clock: clk},
		clock:    clk,
	}
}

func (s *CheckoutService) WithNotifier(n Notifier) *CheckoutService {
	s.notifier = n
	return s
}

func (s *CheckoutService) WithAudit(a AuditRepository) *CheckoutService {
	s.audit.repo = a
	return s
}

type StartCheckoutInput struct {
	ProductID  string
	Type       string
	Buyer      *Buyer
	SuccessURL string
	CancelURL  string
}

type StartCheckoutResult struct {
	URL         string                       `json:"url"`
	Intent      models.PendingPurchaseIntent `json:"intent"`
	AmountCents int64                        `json:"amount_cents"`
}

// Start saves the intent through persist and only then asks the gateway for a
// session. A gateway failure leaves the saved intent in place.
func (s *CheckoutService) Start(ctx context.Context, in StartCheckoutInput, persist func(models.PendingPurchaseIntent) error) (StartCheckoutResult, error) {
	if in.Buyer == nil {
		return StartCheckoutResult{}, models.ErrLoginRequired
	}
	typ, err := models.ParsePurchaseType(in.Type)
	if err != nil {
		return StartCheckoutResult{}, err
	}
	id, err := gocql.ParseUUID(in.ProductID)
	if err != nil {
		return StartCheckoutResult{}, models.ErrInvalidID
	}

	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return StartCheckoutResult{}, err
	}
	amount, err := models.ChargeAmount(typ, product.Price)
	if err != nil {
		return StartCheckoutResult{}, err
	}

	intent := models.PendingPurchaseIntent{ProductID: product.ID.String(), Type: typ}
	if err := persist(intent); err != nil {
		return StartCheckoutResult{}, fmt.Errorf("persist intent: %w", err)
	}

	req, err := NewCheckoutRequest(typ, Checkout{
		Title:         product.Title,
		Price:         product.Price,
		CustomerEmail: in.Buyer.Email,
		SuccessURL:    in.SuccessURL,
		CancelURL:     in.CancelURL,
	})
	if err != nil {
		return StartCheckoutResult{}, err
	}
	url, err := s.gateway.CreateSession(req)
	if err != nil {
		return StartCheckoutResult{}, err
	}

	return StartCheckoutResult{URL: url, Intent: intent, AmountCents: amount}, nil
}

type CompleteCheckoutInput struct {
	Success bool
	Buyer   *Buyer
	Intent  *models.PendingPurchaseIntent
}

type CompleteCheckoutResult struct {
	Order   *models.Order `json:"order,omitempty"`
	Created bool          `json:"order_created"`
}

// Complete reconciles the device's intent into a paid order and then calls
// clear. Without both an intent and a buyer nothing is written.
func (s *CheckoutService) Complete(ctx context.Context, in CompleteCheckoutInput, clear func() error) (CompleteCheckoutResult, error) {
	if !in.Success {
		return CompleteCheckoutResult{}, nil
	}
	if in.Intent == nil || in.Buyer == nil {
		log.Printf("⚠️ Payment returned without a pending order (intent=%t, buyer=%t)", in.Intent != nil, in.Buyer != nil)
		return CompleteCheckoutResult{}, nil
	}

	productID, err := gocql.ParseUUID(in.Intent.ProductID)
	if err != nil || !in.Intent.Type.Valid() {
		log.Printf("⚠️ Dropping unusable pending order %+v", *in.Intent)
		if err := clear(); err != nil {
			log.Printf("⚠️ Could not clear pending order: %v", err)
		}
		return CompleteCheckoutResult{}, nil
	}

	now := s.clock.Now()
	order := &models.Order{
		ID:        gocql.TimeUUID(),
		UserID:    in.Buyer.ID,
		ProductID: productID,
		Type:      in.Intent.Type,
		Status:    models.OrderStatusPaid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return CompleteCheckoutResult{}, err
	}
	log.Printf("✅ Order %s created (%s) for %s", order.ID, order.Type, order.UserID)

	if err := clear(); err != nil {
		log.Printf("⚠️ Order %s created but the pending order was not cleared: %v", order.ID, err)
	}
	s.audit.record(ctx, in.Buyer.ID, models.ActionOrderCreate, models.ResourceOrder, order.ID.String(), string(order.Type), nil)

	product, err := s.products.GetProduct(ctx, productID)
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		log.Printf("⚠️ Order %s references a missing product %s", order.ID, productID)
	case err != nil:
		log.Printf("⚠️ Could not load product for order %s: %v", order.ID, err)
	default:
		s.notifier.OrderPaid(in.Buyer.Email, *order, *product)
	}

	return CompleteCheckoutResult{Order: order, Created: true}, nil
}
