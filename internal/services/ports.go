package services

import (
	"context"
	"time"

	"github.com/gocql/gocql"

	"elite_market/internal/models"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id gocql.UUID) (*models.Product, error)
	GetProducts(ctx context.Context, ids []gocql.UUID) ([]models.Product, error)
	ListByCountry(ctx context.Context, country string) ([]models.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id gocql.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListByProducts(ctx context.Context, productIDs []gocql.UUID) ([]models.Order, error)
	MarkShipped(ctx context.Context, id gocql.UUID, company, code string, at time.Time) error
}

type ShipmentRepository interface {
	CreateShipment(ctx context.Context, s *models.Shipment) error
	ListBySubscriber(ctx context.Context, subscriberID string) ([]models.Shipment, error)
	ListByProducts(ctx context.Context, productIDs []gocql.UUID) ([]models.Shipment, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertByEmail(ctx context.Context, email, name string) (*models.Profile, error)
	SetCountry(ctx context.Context, userID, country string) error
}

type AuditRepository interface {
	InsertAuditLog(ctx context.Context, l *models.AuditLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.AuditLog, error)
}

// Gateway opens hosted payment pages.
type Gateway interface {
	CreateSession(req CheckoutRequest) (string, error)
}

// Notifier tells buyers about their orders. Implementations must not block.
type Notifier interface {
	OrderPaid(to string, order models.Order, product models.Product)
	OrderShipped(to string, order models.Order, product models.Product)
	ShipmentSent(to string, shipment models.Shipment, product models.Product)
}

// ProductCache stores the per-country storefront listing.
type ProductCache interface {
	GetCountry(ctx context.Context, country string) ([]models.Product, bool)
	SetCountry(ctx context.Context, country string, products []models.Product) error
	InvalidateCountry(ctx context.Context, country string) error
}

// Buyer is the authenticated caller as seen by the services.
type Buyer struct {
	ID    string
	Email string
}

type noopNotifier struct{}

func (noopNotifier) OrderPaid(string, models.Order, models.Product)       {}
func (noopNotifier) OrderShipped(string, models.Order, models.Product)    {}
func (noopNotifier) ShipmentSent(string, models.Shipment, models.Product) {}
