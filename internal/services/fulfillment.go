package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"elite_market/internal/clock"
	"elite_market/internal/models"
)

// FulfillmentService backs the seller dashboard: what sold, what still has to
// leave the workshop, and the dispatch actions themselves.
type FulfillmentService struct {
	products  ProductRepository
	orders    OrderRepository
	shipments ShipmentRepository
	profiles  ProfileRepository
	notifier  Notifier
	audit     auditTrail
	clock     clock.Clock
}

func NewFulfillmentService(products ProductRepository, orders OrderRepository, shipments ShipmentRepository, profiles ProfileRepository, clk clock.Clock) *FulfillmentService {
	return &FulfillmentService{
		products:  products,
		orders:    orders,
		shipments: shipments,
		profiles:  profiles,
		notifier:  noopNotifier{},
		audit:     auditTrail{clock: clk},
		clock:     clk,
	}
}

func (s *FulfillmentService) WithNotifier(n Notifier) *FulfillmentService {
	s.notifier = n
	return s
}

func (s *FulfillmentService) WithAudit(a AuditRepository) *FulfillmentService {
	s.audit.repo = a
	return s
}

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

// Activity lists the seller's audited actions, newest first. Without an audit
// store, or when the read fails, the list is empty.
func (s *FulfillmentService) Activity(ctx context.Context, sellerID string, limit int) []models.AuditLog {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	if s.audit.repo == nil {
		return []models.AuditLog{}
	}
	logs, err := s.audit.repo.ListByUser(ctx, sellerID, limit)
	if err != nil {
		log.Printf("⚠️ Activity for %s: %v", sellerID, err)
		return []models.AuditLog{}
	}
	return logs
}

type UnitSale struct {
	models.OrderWithProduct
	Amount      decimal.Decimal `json:"amount"`
	CanDispatch bool            `json:"can_dispatch"`
}

type SubscriptionSale struct {
	models.OrderWithProduct
	Amount      decimal.Decimal  `json:"amount"`
	Shipment    *models.Shipment `json:"shipment,omitempty"`
	CanDispatch bool             `json:"can_dispatch"`
}

type Dashboard struct {
	Month         string             `json:"month"`
	Products      []models.Product   `json:"products"`
	UnitSales     []UnitSale         `json:"unit_sales"`
	Subscriptions []SubscriptionSale `json:"subscriptions"`
	Shipments     []models.Shipment  `json:"shipments"`
	Revenue       decimal.Decimal    `json:"revenue"`
}

// Dashboard loads a seller's sales. month selects the billing cycle the
// subscription rows are checked against; empty means the current month.
// Read failures are logged and produce empty sections.
func (s *FulfillmentService) Dashboard(ctx context.Context, sellerID, month string) (*Dashboard, error) {
	month, err := s.month(month)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Month:         month,
		Products:      []models.Product{},
		UnitSales:     []UnitSale{},
		Subscriptions: []SubscriptionSale{},
		Shipments:     []models.Shipment{},
		Revenue:       decimal.Zero,
	}

	products, err := s.products.ListByOwner(ctx, sellerID)
	if err != nil {
		log.Printf("⚠️ Dashboard products for %s: %v", sellerID, err)
		return d, nil
	}
	if len(products) == 0 {
		return d, nil
	}
	d.Products = products

	byID := make(map[gocql.UUID]*models.Product, len(products))
	ids := make([]gocql.UUID, 0, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
		ids = append(ids, products[i].ID)
	}

	shipments, err := s.shipments.ListByProducts(ctx, ids)
	if err != nil {
		log.Printf("⚠️ Dashboard shipments for %s: %v", sellerID, err)
		shipments = []models.Shipment{}
	}
	d.Shipments = shipments
	sent := indexShipments(shipments)

	orders, err := s.orders.ListByProducts(ctx, ids)
	if err != nil {
		log.Printf("⚠️ Dashboard orders for %s: %v", sellerID, err)
		return d, nil
	}

	for _, o := range orders {
		product := byID[o.ProductID]
		if product == nil {
			continue
		}
		amount := models.SaleAmount(o.Type, product.Price)
		d.Revenue = d.Revenue.Add(amount)
		row := models.OrderWithProduct{Order: o, Product: product}

		if o.Type.IsUnitSale() {
			d.UnitSales = append(d.UnitSales, UnitSale{
				OrderWithProduct: row,
				Amount:           amount,
				CanDispatch:      o.CanTransition(models.OrderStatusShipped) == nil,
			})
			continue
		}

		existing := sent[models.ShipmentKey{SubscriberID: o.UserID, ProductID: o.ProductID, Month: month}]
		d.Subscriptions = append(d.Subscriptions, SubscriptionSale{
			OrderWithProduct: row,
			Amount:           amount,
			Shipment:         existing,
			CanDispatch:      existing == nil,
		})
	}
	return d, nil
}

type DispatchOrderInput struct {
	SellerID        string
	OrderID         string
	ShippingCompany string
	TrackingCode    string
}

// DispatchOrder moves a physical order from paid to shipped.
func (s *FulfillmentService) DispatchOrder(ctx context.Context, in DispatchOrderInput) (*models.Order, error) {
	order, err := s.dispatchOrder(ctx, in)
	s.audit.record(ctx, in.SellerID, models.ActionOrderDispatch, models.ResourceOrder, in.OrderID,
		in.ShippingCompany+" "+in.TrackingCode, err)
	return order, err
}

func (s *FulfillmentService) dispatchOrder(ctx context.Context, in DispatchOrderInput) (*models.Order, error) {
	company, code := strings.TrimSpace(in.ShippingCompany), strings.TrimSpace(in.TrackingCode)
	if company == "" || code == "" {
		return nil, fmt.Errorf("%w: shipping_company and tracking_code", models.ErrMissingField)
	}
	id, err := gocql.ParseUUID(in.OrderID)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	product, err := s.ownedProduct(ctx, in.SellerID, order.ProductID)
	if err != nil {
		return nil, err
	}
	if err := order.CanTransition(models.OrderStatusShipped); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.orders.MarkShipped(ctx, order.ID, company, code, now); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusShipped
	order.ShippingCompany = company
	order.TrackingCode = code
	order.UpdatedAt = now
	log.Printf("📦 Order %s shipped with %s (%s)", order.ID, company, code)

	if buyer, err := s.profiles.GetProfile(ctx, order.UserID); err == nil {
		s.notifier.OrderShipped(buyer.Email, *order, *product)
	} else {
		log.Printf("⚠️ No buyer profile to notify for order %s: %v", order.ID, err)
	}
	return order, nil
}

type DispatchMonthlyInput struct {
	SellerID        string
	SubscriberID    string
	ProductID       string
	Month           string
	Content         string
	ShippingCompany string
	TrackingCode    string
}

// DispatchMonthly records one month of a subscription box. A second shipment
// for the same subscriber, product and month is refused, checked against the
// shipments loaded for the product. There is no storage constraint behind it.
func (s *FulfillmentService) DispatchMonthly(ctx context.Context, in DispatchMonthlyInput) (*models.Shipment, error) {
	shipment, err := s.dispatchMonthly(ctx, in)
	resourceID := in.SubscriberID + "/" + in.ProductID + "/" + in.Month
	if shipment != nil {
		resourceID = shipment.ID.String()
	}
	s.audit.record(ctx, in.SellerID, models.ActionShipmentDispatch, models.ResourceShipment, resourceID,
		in.ShippingCompany+" "+in.TrackingCode, err)
	return shipment, err
}

func (s *FulfillmentService) dispatchMonthly(ctx context.Context, in DispatchMonthlyInput) (*models.Shipment, error) {
	company, code := strings.TrimSpace(in.ShippingCompany), strings.TrimSpace(in.TrackingCode)
	if in.SubscriberID == "" || company == "" || code == "" {
		return nil, fmt.Errorf("%w: subscriber_id, shipping_company and tracking_code", models.ErrMissingField)
	}
	month, err := s.month(in.Month)
	if err != nil {
		return nil, err
	}
	productID, err := gocql.ParseUUID(in.ProductID)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	product, err := s.ownedProduct(ctx, in.SellerID, productID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByProducts(ctx, []gocql.UUID{productID})
	if err != nil {
		return nil, err
	}
	if !hasSubscription(orders, in.SubscriberID, productID) {
		return nil, models.ErrNoSubscription
	}

	existing, err := s.shipments.ListByProducts(ctx, []gocql.UUID{productID})
	if err != nil {
		return nil, err
	}
	key := models.ShipmentKey{SubscriberID: in.SubscriberID, ProductID: productID, Month: month}
	if indexShipments(existing)[key] != nil {
		return nil, models.ErrShipmentAlreadyDispatched
	}

	shipment := &models.Shipment{
		ID:              gocql.TimeUUID(),
		SubscriberID:    in.SubscriberID,
		ProductID:       productID,
		Month:           month,
		Content:         strings.TrimSpace(in.Content),
		ShippingCompany: company,
		TrackingCode:    code,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.shipments.CreateShipment(ctx, shipment); err != nil {
		return nil, err
	}
	log.Printf("📦 Box %s for %s sent to %s with %s (%s)", month, product.Title, in.SubscriberID, company, code)

	if buyer, err := s.profiles.GetProfile(ctx, in.SubscriberID); err == nil {
		s.notifier.ShipmentSent(buyer.Email, *shipment, *product)
	} else {
		log.Printf("⚠️ No subscriber profile to notify for shipment %s: %v", shipment.ID, err)
	}
	return shipment, nil
}

func (s *FulfillmentService) ownedProduct(ctx context.Context, sellerID string, productID gocql.UUID) (*models.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != sellerID {
		return nil, models.ErrNotProductOwner
	}
	return product, nil
}

func (s *FulfillmentService) month(label string) (string, error) {
	if label == "" {
		return s.clock.Now().Format(models.MonthLayout), nil
	}
	return models.ParseMonth(label)
}

func indexShipments(shipments []models.Shipment) map[models.ShipmentKey]*models.Shipment {
	idx := make(map[models.ShipmentKey]*models.Shipment, len(shipments))
	for i := range shipments {
		k := shipments[i].Key()
		if idx[k] == nil {
			idx[k] = &shipments[i]
		}
	}
	return idx
}

func hasSubscription(orders []models.Order, subscriberID string, productID gocql.UUID) bool {
	for _, o := range orders {
		if o.UserID == subscriberID && o.ProductID == productID && o.Type == models.PurchaseSubscription {
			return true
		}
	}
	return false
}
