package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gocql/gocql"

	"elite_market/internal/models"
)

// What the buyer's order row offers.
const (
	DisplayTracking   = "tracking"
	DisplayDownload   = "download"
	DisplayProcessing = "processing"
)

type ProfileService struct {
	profiles  ProfileRepository
	orders    OrderRepository
	shipments ShipmentRepository
	products  ProductRepository
}

func NewProfileService(profiles ProfileRepository, orders OrderRepository, shipments ShipmentRepository, products ProductRepository) *ProfileService {
	return &ProfileService{profiles: profiles, orders: orders, shipments: shipments, products: products}
}

type ProfileOrder struct {
	models.OrderWithProduct
	Display  string           `json:"display"`
	Tracking *models.Tracking `json:"tracking,omitempty"`
}

type ProfileShipment struct {
	models.Shipment
	Product  *models.Product `json:"product,omitempty"`
	Tracking models.Tracking `json:"tracking"`
}

type ProfileView struct {
	Profile   *models.Profile   `json:"profile"`
	Orders    []ProfileOrder    `json:"orders"`
	Shipments []ProfileShipment `json:"shipments"`
}

// OrderDisplay picks what the buyer sees for an order.
func OrderDisplay(o models.Order) string {
	switch {
	case o.Status == models.OrderStatusShipped:
		return DisplayTracking
	case o.Type == models.PurchaseDigital:
		return DisplayDownload
	default:
		return DisplayProcessing
	}
}

// View aggregates a buyer's purchases and monthly boxes, newest first. Read
// failures leave the affected list empty.
func (s *ProfileService) View(ctx context.Context, userID string) (*ProfileView, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{Profile: profile, Orders: []ProfileOrder{}, Shipments: []ProfileShipment{}}

	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Profile orders for %s: %v", userID, err)
		orders = nil
	}
	shipments, err := s.shipments.ListBySubscriber(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Profile shipments for %s: %v", userID, err)
		shipments = nil
	}

	products := s.productIndex(ctx, orders, shipments)

	for _, o := range orders {
		row := ProfileOrder{
			OrderWithProduct: models.OrderWithProduct{Order: o, Product: products[o.ProductID]},
			Display:          OrderDisplay(o),
		}
		if row.Display == DisplayTracking {
			row.Tracking = &models.Tracking{ShippingCompany: o.ShippingCompany, TrackingCode: o.TrackingCode}
		}
		view.Orders = append(view.Orders, row)
	}
	for _, sh := range shipments {
		view.Shipments = append(view.Shipments, ProfileShipment{
			Shipment: sh,
			Product:  products[sh.ProductID],
			Tracking: models.Tracking{ShippingCompany: sh.ShippingCompany, TrackingCode: sh.TrackingCode},
		})
	}
	return view, nil
}

func (s *ProfileService) productIndex(ctx context.Context, orders []models.Order, shipments []models.Shipment) map[gocql.UUID]*models.Product {
	seen := make(map[gocql.UUID]bool)
	var ids []gocql.UUID
	add := func(id gocql.UUID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, o := range orders {
		add(o.ProductID)
	}
	for _, sh := range shipments {
		add(sh.ProductID)
	}

	idx := make(map[gocql.UUID]*models.Product, len(ids))
	if len(ids) == 0 {
		return idx
	}
	products, err := s.products.GetProducts(ctx, ids)
	if err != nil {
		log.Printf("⚠️ Profile products: %v", err)
		return idx
	}
	for i := range products {
		idx[products[i].ID] = &products[i]
	}
	return idx
}

// Order loads one of the buyer's own orders with its product. Someone
// else's order is reported as not found.
func (s *ProfileService) Order(ctx context.Context, userID, rawID string) (*models.OrderWithProduct, error) {
	id, err := gocql.ParseUUID(rawID)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrOrderNotFound
	}
	product, err := s.products.GetProduct(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}
	return &models.OrderWithProduct{Order: *order, Product: product}, nil
}

// SetCountry stores the storefront country the buyer picked.
func (s *ProfileService) SetCountry(ctx context.Context, userID, country string) (*models.Profile, error) {
	country = strings.TrimSpace(country)
	if !models.IsCountry(country) {
		return nil, models.ErrInvalidCountry
	}
	if err := s.profiles.SetCountry(ctx, userID, country); err != nil {
		return nil, err
	}
	return s.profiles.GetProfile(ctx, userID)
}

// Login maps an OAuth identity onto a profile, creating it the first time.
func (s *ProfileService) Login(ctx context.Context, email, name string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.ErrMissingField
	}
	return s.profiles.UpsertByEmail(ctx, email, name)
}

// Country resolves the storefront country: an explicit choice wins over the
// buyer's saved one.
func (s *ProfileService) Country(ctx context.Context, explicit string, buyer *Buyer) (string, error) {
	if c := strings.TrimSpace(explicit); c != "" {
		if !models.IsCountry(c) {
			return "", models.ErrInvalidCountry
		}
		return c, nil
	}
	if buyer == nil {
		return "", models.ErrCountryRequired
	}
	profile, err := s.profiles.GetProfile(ctx, buyer.ID)
	if errors.Is(err, models.ErrProfileNotFound) {
		return "", models.ErrCountryRequired
	}
	if err != nil {
		log.Printf("⚠️ Profile country for %s: %v", buyer.ID, err)
		return "", models.ErrCountryRequired
	}
	if !profile.HasCountry() {
		return "", models.ErrCountryRequired
	}
	return *profile.Country, nil
}
